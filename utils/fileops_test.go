package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic_ReplacesContentAndKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")

	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := WriteFileAtomic(path, []byte("new content")); err != nil {
		t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(b) != "new content" {
		t.Errorf("Expected replaced content, got %q", string(b))
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("Expected mode 0600 to be kept, got %v", fi.Mode().Perm())
	}

	assertNoTempFiles(t, dir, "a.jpg")
}

func TestWriteFileAtomic_RenameFailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")

	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	old := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return os.ErrPermission
	}
	defer func() { renameFunc = old }()

	if err := WriteFileAtomic(path, []byte("replacement")); err == nil {
		t.Fatal("Expected WriteFileAtomic() to fail")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(b) != "original" {
		t.Errorf("Original file should be untouched, got %q", string(b))
	}

	assertNoTempFiles(t, dir, "a.jpg")
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "out", "nested", "a.jpg")

	if err := os.WriteFile(src, []byte("photo"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() unexpected error: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Source file should be gone after move")
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("Destination file should exist: %v", err)
	}
}

func TestMoveFile_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "b.jpg")

	for _, p := range []string{src, dst} {
		if err := os.WriteFile(p, []byte(filepath.Base(p)), 0o644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	err := MoveFile(src, dst)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("Expected os.ErrExist, got %v", err)
	}

	b, _ := os.ReadFile(dst)
	if string(b) != "b.jpg" {
		t.Errorf("Destination should be untouched, got %q", string(b))
	}
}

func assertNoTempFiles(t *testing.T, dir, name string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "."+name+".tmp-") {
			t.Errorf("Temp file left behind: %q", e.Name())
		}
	}
}

func TestRemoveStaleTempFiles(t *testing.T) {
	dir := t.TempDir()

	keep := []string{"IMG_0001.jpg", ".hidden", "notes.tmp-1"}
	stale := []string{".IMG_0001.jpg.tmp-123456", ".IMG_0002.jpg.tmp-abc"}
	for _, name := range append(append([]string{}, keep...), stale...) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := RemoveStaleTempFiles(dir)
	if err != nil {
		t.Fatalf("RemoveStaleTempFiles() unexpected error: %v", err)
	}
	if len(removed) != len(stale) {
		t.Errorf("Expected %d removals, got %v", len(stale), removed)
	}
	for _, name := range stale {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", name)
		}
	}
	for _, name := range keep {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s should have been kept", name)
		}
	}
}

func TestRemoveStaleTempFiles_MatchesWriteFileAtomicNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_0001.jpg")

	// a crashed write leaves a temp file named like the ones WriteFileAtomic creates
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+tempMarker+"*")
	if err != nil {
		t.Fatal(err)
	}
	tmp.Close()

	if _, err := RemoveStaleTempFiles(dir); err != nil {
		t.Fatalf("RemoveStaleTempFiles() unexpected error: %v", err)
	}
	assertNoTempFiles(t, dir, filepath.Base(path))
}
