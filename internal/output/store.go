package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Store writes documents below a root directory. Documents whose content
// hash matches the file already on disk are left untouched, so re-running
// over unchanged history does not rewrite the tree.
type Store struct {
	root      string
	written   int
	unchanged int
}

// NewStore creates a store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Written returns the number of files written so far.
func (s *Store) Written() int {
	return s.written
}

// Unchanged returns the number of writes skipped because the content was identical.
func (s *Store) Unchanged() int {
	return s.unchanged
}

// WriteJSON encodes v with two-space indentation and writes it to rel.
func (s *Store) WriteJSON(rel string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rel, err)
	}
	return s.WriteFile(rel, data)
}

// WriteFile writes data to rel, creating parent directories.
func (s *Store) WriteFile(rel string, data []byte) error {
	path := filepath.Join(s.root, filepath.FromSlash(rel))

	if sameContent(path, data) {
		s.unchanged++
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	s.written++
	return nil
}

// sameContent reports whether the file at path has data's length and
// xxhash. The file is streamed through the digest, never read whole.
func sameContent(path string, data []byte) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() != int64(len(data)) {
		return false
	}
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return false
	}
	return h.Sum64() == xxhash.Sum64(data)
}

// EncodeJSON renders v as indented JSON without HTML escaping or a
// trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
