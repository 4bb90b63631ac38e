package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Account creates userdata/<id>/config with an empty collection ledger and
// returns the config directory.
func Account(t testing.TB, userdata, id string) string {
	t.Helper()

	configDir := filepath.Join(userdata, id, "config")
	WriteFile(t, filepath.Join(configDir, "cloudstorage", "cloud-storage-namespace-1.json"), []byte("[]"))
	return configDir
}

// Emulator writes a stub executable under the config base directory and
// returns its path.
func Emulator(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, "emu", name)
	WriteFile(t, path, []byte("MZ"))
	return path
}

// ROMs creates empty files under dir/roms for each name and returns the
// folder.
func ROMs(t testing.TB, dir string, names ...string) string {
	t.Helper()

	root := filepath.Join(dir, "roms")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir roms: %v", err)
	}
	for _, name := range names {
		WriteFile(t, filepath.Join(root, name), nil)
	}
	return root
}
