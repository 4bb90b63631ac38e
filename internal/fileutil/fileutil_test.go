package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func TestWriteFileAtomicCreatesParents(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "a", "b", "out.bin")

	if err := WriteFileAtomic(dst, []byte("hello world")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello world" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(dst, []byte("old contents that are longer"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(dst, []byte("new")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("expected replaced content, got %q", got)
	}
}

func TestWriteStreamAtomic(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "stream.txt")
	if err := WriteStreamAtomic(dst, strings.NewReader("streamed")); err != nil {
		t.Fatal(err)
	}
	if !Exists(dst) {
		t.Fatal("expected file to exist")
	}
}

func TestWriteStreamAtomicKeepsOldFileOnReadError(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "icon.png")
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(io.ErrUnexpectedEOF))
	if err := WriteStreamAtomic(dst, broken); err == nil {
		t.Fatal("expected read error")
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "old" {
		t.Fatalf("interrupted write replaced the file: %q", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %d entries", len(entries))
	}
}

func TestExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	if !Exists(dir) || !IsDir(dir) {
		t.Fatal("temp dir should exist and be a directory")
	}
	missing := filepath.Join(dir, "missing")
	if Exists(missing) || IsDir(missing) {
		t.Fatal("missing path reported present")
	}
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if IsDir(file) {
		t.Fatal("regular file reported as directory")
	}
}

func TestReadOptional(t *testing.T) {
	dir := t.TempDir()
	if _, ok, err := ReadOptional(filepath.Join(dir, "nope")); ok || err != nil {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}
	path := filepath.Join(dir, "yes")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, ok, err := ReadOptional(path)
	if err != nil || !ok || string(data) != "x" {
		t.Fatalf("ReadOptional = %q %v %v", data, ok, err)
	}
}
