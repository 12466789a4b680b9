package copier

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyPreservesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "out", "【123】src.md")

	content := []byte("# report\n本文\n")
	if err := os.WriteFile(src, content, 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("destination content = %q, want %q", got, content)
	}

	// Source must be untouched.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source missing after copy: %v", err)
	}
}

func TestCopyCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "a", "b", "dst.md")

	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination not created: %v", err)
	}
}

func TestCopyPreservesModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "dst.md")

	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	modTime := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, modTime, modTime); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !info.ModTime().Equal(modTime) {
		t.Errorf("ModTime = %v, want %v", info.ModTime(), modTime)
	}
}

func TestCopyPreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "dst.md")

	if err := os.WriteFile(src, []byte("x"), 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCopySourceNotFound(t *testing.T) {
	dir := t.TempDir()
	err := Copy(filepath.Join(dir, "absent.md"), filepath.Join(dir, "dst.md"))
	if err == nil {
		t.Fatal("expected an error for a missing source")
	}

	var copyErr *CopyError
	if !errors.As(err, &copyErr) {
		t.Fatalf("expected *CopyError, got %T", err)
	}
	if copyErr.Type != SourceNotFound {
		t.Errorf("Type = %q, want %q", copyErr.Type, SourceNotFound)
	}
}

func TestCopyDestinationExists(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "dst.md")

	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.WriteFile(dst, []byte("existing"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	err := Copy(src, dst)
	if err == nil {
		t.Fatal("expected an error for an existing destination")
	}

	var copyErr *CopyError
	if !errors.As(err, &copyErr) {
		t.Fatalf("expected *CopyError, got %T", err)
	}
	if copyErr.Type != DestinationExists {
		t.Errorf("Type = %q, want %q", copyErr.Type, DestinationExists)
	}

	// The existing file must be untouched.
	got, _ := os.ReadFile(dst)
	if string(got) != "existing" {
		t.Errorf("existing destination was overwritten: %q", got)
	}
}
