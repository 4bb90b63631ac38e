package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"emustation/internal/services"
	"emustation/internal/shortcuts"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{file: "Super Game [0100ABC][v0].nsp", want: "Super Game"},
		{file: "Plain.nsp", want: "Plain"},
		{file: "[v0] Leading.nsp", want: "[v0] Leading"},
		{file: "Spaced  [v0].nsp", want: "Spaced"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.file); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"Super Game [0100][v0].nsp",
		"Super Game [0100][v65536].nsp",
		"sub/Other Game [0200][V0].NSP",
		"sub/readme.txt",
		"sub/deeper/Third [v0].xci",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Scan(context.Background(), root, Options{Extensions: []string{".nsp"}, RequireTag: "[v0]"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []shortcuts.Entry{
		{DisplayName: "Super Game", Path: filepath.Join(root, "Super Game [0100][v0].nsp")},
		{DisplayName: "Other Game", Path: filepath.Join(root, "sub", "Other Game [0200][V0].NSP")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	got, err = Scan(context.Background(), root, Options{Extensions: []string{".nsp", ".xci"}})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("without tag filter expected 4 entries, got %d", len(got))
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{Extensions: []string{".nsp"}})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
