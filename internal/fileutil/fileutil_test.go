package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")
	if err := os.WriteFile(src, []byte("audio payload"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "audio payload" {
		t.Fatalf("unexpected destination contents: %q", data)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "staged.mp3")
	dst := filepath.Join(dir, "final.mp3")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected source to be gone, stat returned %v", err)
	}
	if err := NonEmptyFile(dst); err != nil {
		t.Fatalf("expected destination to be non-empty: %v", err)
	}
}

func TestNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.mp3")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	if err := NonEmptyFile(empty); err == nil {
		t.Fatal("expected error for empty file")
	}
	if err := NonEmptyFile(dir); err == nil {
		t.Fatal("expected error for directory")
	}
	if err := NonEmptyFile(filepath.Join(dir, "missing.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
