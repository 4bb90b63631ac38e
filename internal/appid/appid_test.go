package appid

import (
	"hash/crc32"
	"testing"
)

func TestDeriveSetsHighBit(t *testing.T) {
	inputs := [][2]string{
		{"/emu/run.exe", "Super Game"},
		{"/emu/run.exe", "Other Game"},
		{`C:\Emu\yuzu.exe`, "Zelda"},
		{"", ""},
	}
	for _, in := range inputs {
		id := Derive(in[0], in[1])
		if !IsShortcut(id) {
			t.Fatalf("Derive(%q, %q) = %#x, high bit not set", in[0], in[1], id)
		}
	}
}

func TestDeriveMatchesCRCOfNormalizedInput(t *testing.T) {
	got := Derive("/emu/run.exe", "Super Game")
	want := crc32.ChecksumIEEE([]byte(`\emu\run.exeSuper Game`)) | 0x80000000
	if got != want {
		t.Fatalf("Derive = %#x, want %#x", got, want)
	}
}

func TestDeriveKnownValue(t *testing.T) {
	// crc32("123456789") is the standard check value 0xCBF43926.
	if got := Derive("1234", "56789"); got != 0xCBF43926 {
		t.Fatalf("Derive check value = %#x, want %#x", got, uint32(0xCBF43926))
	}
}

func TestDeriveDeterministicAndDistinct(t *testing.T) {
	a := Derive("/emu/run.exe", "Super Game")
	if again := Derive("/emu/run.exe", "Super Game"); again != a {
		t.Fatalf("Derive not stable: %#x vs %#x", a, again)
	}
	if b := Derive("/emu/run.exe", "Other Game"); b == a {
		t.Fatalf("expected distinct identifiers for different names, both %#x", a)
	}
	if c := Derive("/emu/other.exe", "Super Game"); c == a {
		t.Fatalf("expected distinct identifiers for different executables, both %#x", a)
	}
}

func TestDeriveSlashInsensitive(t *testing.T) {
	if Derive("C:/Emu/run.exe", "X") != Derive(`C:\Emu\run.exe`, "X") {
		t.Fatal("expected forward and back slashes to derive the same identifier")
	}
}

func TestSignedConversion(t *testing.T) {
	tests := []struct {
		id   uint32
		want int32
	}{
		{0x80000000, -2147483648},
		{0xFFFFFFFF, -1},
		{0x80000001, -2147483647},
		{0x7FFFFFFF, 2147483647},
	}
	for _, tt := range tests {
		if got := ToSigned(tt.id); got != tt.want {
			t.Errorf("ToSigned(%#x) = %d, want %d", tt.id, got, tt.want)
		}
		if back := FromSigned(tt.want); back != tt.id {
			t.Errorf("FromSigned(%d) = %#x, want %#x", tt.want, back, tt.id)
		}
	}
}

func TestGridBase(t *testing.T) {
	if got := GridBase(0xCBF43926); got != "3421780262" {
		t.Fatalf("GridBase = %q", got)
	}
}
