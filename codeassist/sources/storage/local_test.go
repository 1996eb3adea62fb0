package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSave_StripsDirectoryTraversal(t *testing.T) {
	store := newTestStore(t)

	path, size, err := store.Save("sess-1", "../../etc/passwd", strings.NewReader("root:x:0:0"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("root:x:0:0")) {
		t.Errorf("size mismatch: %d", size)
	}
	want := filepath.Join(store.Root(), "sess-1", "passwd")
	if path != want {
		t.Errorf("expected %q, got %q", want, path)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("file not stored at sanitized path: %v", err)
	}
	// Nothing may land outside the session dir.
	if _, err := os.Stat(filepath.Join(store.Root(), "etc")); !os.IsNotExist(err) {
		t.Errorf("traversal escaped the session directory")
	}
}

func TestSave_OverwritesSameName(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := store.Save("sess-1", "a.txt", strings.NewReader("first")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	path, _, err := store.Save("sess-1", "a.txt", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected overwrite, got %q", data)
	}
}

func TestReadText_SizeCeiling(t *testing.T) {
	store := newTestStore(t)

	small, _, err := store.Save("sess-1", "small.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("save small: %v", err)
	}
	big, _, err := store.Save("sess-1", "big.txt", strings.NewReader(strings.Repeat("x", 600)))
	if err != nil {
		t.Fatalf("save big: %v", err)
	}

	if text, ok := store.ReadText(small, 500); !ok || text != "hello" {
		t.Errorf("expected small file readable, ok=%v text=%q", ok, text)
	}
	if _, ok := store.ReadText(big, 500); ok {
		t.Errorf("expected file at the ceiling to be skipped")
	}
	if _, ok := store.ReadText(filepath.Join(store.Root(), "sess-1", "missing.txt"), 500); ok {
		t.Errorf("expected missing file to be skipped")
	}
}

func TestReadText_ReplacesInvalidUTF8(t *testing.T) {
	store := newTestStore(t)

	path, _, err := store.Save("sess-1", "bin.dat", strings.NewReader("ok\xff\xfeok"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	text, ok := store.ReadText(path, 500)
	if !ok {
		t.Fatalf("expected readable")
	}
	if !strings.Contains(text, "�") {
		t.Errorf("expected replacement rune in %q", text)
	}
	if !strings.HasPrefix(text, "ok") || !strings.HasSuffix(text, "ok") {
		t.Errorf("valid bytes should survive: %q", text)
	}
}

func TestRemove_MissingFileIsFine(t *testing.T) {
	store := newTestStore(t)
	if err := store.Remove("sess-1", "never-there.txt"); err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
}

func TestRemoveSession_DeletesDirectory(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := store.Save("sess-1", "a.txt", strings.NewReader("a")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.RemoveSession("sess-1"); err != nil {
		t.Fatalf("remove session: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "sess-1")); !os.IsNotExist(err) {
		t.Errorf("session dir still present")
	}
}
