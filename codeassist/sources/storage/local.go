package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploaded files on disk, one directory per session under
// the uploads root.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

// Save writes the upload under <root>/<sessionID>/<basename>. The filename is
// reduced to its base name so a crafted name can never escape the session dir.
// An existing file with the same name is replaced.
func (s *LocalStore) Save(sessionID, filename string, r io.Reader) (string, int64, error) {
	safeName := filepath.Base(filepath.Clean(filename))
	dir := filepath.Join(s.root, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}
	path := filepath.Join(dir, safeName)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()
	size, err := io.Copy(f, r)
	if err != nil {
		return "", 0, err
	}
	return path, size, nil
}

// SafeName is the basename Save would store a filename under.
func SafeName(filename string) string {
	return filepath.Base(filepath.Clean(filename))
}

// Remove deletes one stored file. A file that is already gone is not an error.
func (s *LocalStore) Remove(sessionID, filename string) error {
	path := filepath.Join(s.root, sessionID, SafeName(filename))
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveSession deletes the session's whole upload directory.
func (s *LocalStore) RemoveSession(sessionID string) error {
	return os.RemoveAll(filepath.Join(s.root, sessionID))
}

// ReadText returns the file decoded as text with undecodable bytes replaced.
// ok is false when the file is missing or at least limit bytes large; such
// files are skipped from prompt context but stay listed in the database.
func (s *LocalStore) ReadText(path string, limit int64) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.Size() >= limit {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.ToValidUTF8(string(data), "�"), true
}
