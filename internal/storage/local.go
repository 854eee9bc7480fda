package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
)

// LocalStore keeps files in a directory tree served under a URL prefix
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore creates the asset directories under root
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	for _, dir := range []string{ProfileImageDir, ChatImageDir, GiftDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}
	return &LocalStore{root: root, urlPrefix: urlPrefix}, nil
}

// Root returns the directory files are written to
func (s *LocalStore) Root() string {
	return s.root
}

// Save writes body to dir/name, replacing an existing file of the same name
func (s *LocalStore) Save(ctx context.Context, dir, name string, body io.Reader) error {
	target := filepath.Join(s.root, dir, filepath.Base(name))
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// List returns the file names in dir, sorted
func (s *LocalStore) List(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// URL returns the public path of dir/name
func (s *LocalStore) URL(ctx context.Context, dir, name string) (string, error) {
	return s.urlPrefix + "/" + dir + "/" + url.PathEscape(name), nil
}
