package steam

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"emustation/internal/services"
)

const localConfig = `"UserLocalConfigStore"
{
	"friends"
	{
		"PersonaName"		"Player One"
	}
}
`

func makeUserdata(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"12345/config", "67890/config", "anonymous", "ac"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "12345", "config", "localconfig.vdf"), []byte(localConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "67890", "config", "localconfig.vdf"), []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestListUsers(t *testing.T) {
	root := makeUserdata(t)
	users, err := ListUsers(root, nil)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	want := []User{
		{ID: "12345", Persona: "Player One"},
		{ID: "67890", Persona: "67890"},
	}
	if diff := cmp.Diff(want, users); diff != "" {
		t.Fatalf("users mismatch (-want +got):\n%s", diff)
	}
	if got := users[0].Label(); got != "Player One (12345)" {
		t.Errorf("Label = %q", got)
	}
	if got := users[1].Label(); got != "67890" {
		t.Errorf("Label = %q", got)
	}
}

func TestFindUserdataOverride(t *testing.T) {
	root := makeUserdata(t)
	got, err := FindUserdata(root)
	if err != nil || got != root {
		t.Fatalf("FindUserdata = %q, %v", got, err)
	}
	if _, err := FindUserdata(filepath.Join(root, "nope")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenAccountPaths(t *testing.T) {
	root := makeUserdata(t)
	acct, err := OpenAccount(root, "12345")
	if err != nil {
		t.Fatalf("OpenAccount: %v", err)
	}
	cfg := filepath.Join(root, "12345", "config")
	if acct.ShortcutsPath() != filepath.Join(cfg, "shortcuts.vdf") {
		t.Errorf("ShortcutsPath = %s", acct.ShortcutsPath())
	}
	if acct.GridDir() != filepath.Join(cfg, "grid") {
		t.Errorf("GridDir = %s", acct.GridDir())
	}
	if acct.LedgerPath() != filepath.Join(cfg, "cloudstorage", "cloud-storage-namespace-1.json") {
		t.Errorf("LedgerPath = %s", acct.LedgerPath())
	}
}

func TestOpenAccountErrors(t *testing.T) {
	root := makeUserdata(t)
	if _, err := OpenAccount(root, "99999"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("missing account: %v", err)
	}
	if _, err := OpenAccount(root, "../etc"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("non-numeric account: %v", err)
	}
}
