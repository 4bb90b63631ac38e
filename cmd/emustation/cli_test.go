package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"emustation/internal/appid"
	"emustation/internal/shortcuts"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "SteamGridDB key: no")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
}

func TestConfigShowRedactsKey(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.SteamGridDB.APIKey = "super-secret"
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "super-secret") {
		t.Fatalf("api key leaked: %s", out)
	}
	requireContains(t, out, "<redacted>")
}

func TestAppIDCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"appid", `C:\emu\yuzu.exe`, "Super Game"}, "")
	if err != nil {
		t.Fatalf("appid: %v", err)
	}
	id := appid.Derive(`C:\emu\yuzu.exe`, "Super Game")
	requireContains(t, out, "appid:   "+strconv.FormatUint(uint64(id), 10))
	requireContains(t, out, "signed:  "+strconv.FormatInt(int64(appid.ToSigned(id)), 10))
}

func TestScanCommandFiltersByTag(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"scan", env.roms, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var rows []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode scan output: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 games, got %+v", rows)
	}
	names := rows[0].Name + "," + rows[1].Name
	requireContains(t, names, "Super Game")
	requireContains(t, names, "Other Game")
}

func TestUsersCommand(t *testing.T) {
	env := setupCLITestEnv(t, "12345", "67890")

	out, _, err := runCLI(t, []string{"users"}, env.configPath)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	requireContains(t, out, "12345")
	requireContains(t, out, "67890")
}

func TestSyncCommandEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t, "12345")

	args := []string{"sync", "--emulator", env.emulator, "--roms", env.roms, "--platform", "Switch", "--no-artwork"}
	out, _, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("sync: %v\n%s", err, out)
	}
	requireContains(t, out, "Successfully added/updated 2 shortcuts")

	reg, err := shortcuts.Load(filepath.Join(env.cfg.Paths.SteamUserdataDir, "12345", "config", "shortcuts.vdf"), nil)
	if err != nil {
		t.Fatalf("load shortcuts: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 shortcuts, got %d", reg.Len())
	}

	// A second run updates in place.
	if _, _, err := runCLI(t, args, env.configPath); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	out, _, err = runCLI(t, []string{"shortcuts", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("shortcuts list: %v", err)
	}
	var listed []shortcutRow
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode shortcuts: %v\n%s", err, out)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 listed shortcuts, got %d", len(listed))
	}

	out, _, err = runCLI(t, []string{"collections", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("collections list: %v", err)
	}
	requireContains(t, out, "Switch")
}

func TestSyncCommandReportsValidationError(t *testing.T) {
	env := setupCLITestEnv(t, "12345")

	args := []string{"sync", "--emulator", filepath.Join(env.baseDir, "missing.exe"), "--roms", env.roms,
		"--platform", "Switch", "--no-artwork"}
	_, _, err := runCLI(t, args, env.configPath)
	if err == nil {
		t.Fatal("expected sync to fail for a missing emulator")
	}
	if !strings.HasPrefix(err.Error(), "Error: ") {
		t.Fatalf("unexpected error text %q", err)
	}
}

func TestPlatformSetAndGuess(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"platform", "guess", `C:\emu\Ryujinx.exe`}, env.configPath)
	if err != nil {
		t.Fatalf("platform guess: %v", err)
	}
	requireContains(t, out, "(builtin)")

	if _, _, err := runCLI(t, []string{"platform", "set", "mybox", "Homebrew"}, env.configPath); err != nil {
		t.Fatalf("platform set: %v", err)
	}
	out, _, err = runCLI(t, []string{"platform", "guess", "/opt/MyBox-Emu.AppImage"}, env.configPath)
	if err != nil {
		t.Fatalf("platform guess: %v", err)
	}
	requireContains(t, out, "Homebrew (custom)")
}
