package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"emustation/internal/services"
)

func TestGuessBuiltin(t *testing.T) {
	m := &Mapping{}
	tests := []struct {
		exe    string
		want   string
		source Source
	}{
		{exe: `C:\Emu\yuzu.exe`, want: "Switch", source: SourceBuiltin},
		{exe: "/opt/emu/Ryujinx", want: "Switch", source: SourceBuiltin},
		{exe: `"D:\Emulators\melonDS.exe"`, want: "DS", source: SourceBuiltin},
		{exe: "/usr/bin/citra-qt", want: "3DS", source: SourceBuiltin},
		{exe: "/usr/bin/dolphin-emu", want: "GameCube/Wii", source: SourceBuiltin},
		{exe: "/usr/bin/mysterybox.exe", want: "Mysterybox", source: SourceFallback},
		{exe: "/opt/Mystery-Box-CMD", want: "Mystery-box-cmd", source: SourceFallback},
	}
	for _, tt := range tests {
		got, source := m.Guess(tt.exe)
		if got != tt.want || source != tt.source {
			t.Errorf("Guess(%q) = %q/%s, want %q/%s", tt.exe, got, source, tt.want, tt.source)
		}
	}
}

func TestCustomWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platforms.json")
	jsonc := `{
	// user overrides
	"custom": {
		"Yuzu": "Nintendo Switch",
		"yuzu-early": "Switch (EA)",
	},
}`
	if err := os.WriteFile(path, []byte(jsonc), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, src := m.Guess("/emu/yuzu.exe"); got != "Nintendo Switch" || src != SourceCustom {
		t.Fatalf("Guess = %q/%s", got, src)
	}
	if got, _ := m.Guess("/emu/yuzu-early-access.exe"); got != "Switch (EA)" {
		t.Fatalf("longest custom key should win, got %q", got)
	}
}

func TestLoadMissingAndInvalid(t *testing.T) {
	dir := t.TempDir()
	m, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil || len(m.Custom) != 0 {
		t.Fatalf("missing file: %v %v", m, err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"custom": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestSetAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "platforms.json")
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Set("", "x"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := m.Set(" MyEmu ", "Custom Console"); err != nil {
		t.Fatal(err)
	}
	if err := Save(path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, src := reloaded.Guess("/bin/myemu.exe"); got != "Custom Console" || src != SourceCustom {
		t.Fatalf("Guess after reload = %q/%s", got, src)
	}
}

func TestExeKey(t *testing.T) {
	tests := map[string]string{
		`C:\A\B\Yuzu.EXE`:   "yuzu",
		"/usr/bin/pcsx2":    "pcsx2",
		"":                  "",
		".hidden":           ".hidden",
		`"C:\x\no$gba.exe"`: "no$gba",
	}
	for in, want := range tests {
		if got := ExeKey(in); got != want {
			t.Errorf("ExeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
