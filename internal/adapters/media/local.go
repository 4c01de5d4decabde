package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"churchconnect/internal/domain"
)

// Compile-time interface check.
var _ domain.MediaStore = (*localStore)(nil)

// LocalConfig configures storage in a directory served by the application.
type LocalConfig struct {
	Dir     string
	BaseURL string
}

type localStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a MediaStore that writes files under cfg.Dir and serves
// them from cfg.BaseURL.
func NewLocalStore(cfg LocalConfig) (domain.MediaStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("local media store: directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "/media"
	}
	return &localStore{dir: cfg.Dir, baseURL: base}, nil
}

func (s *localStore) IsLocal() bool { return true }

// Put writes body to dir/key. Keys must be relative and stay inside dir.
func (s *localStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	dest, clean, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("creating media directory: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", clean, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(dest)
		return "", fmt.Errorf("writing %s: %w", clean, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", clean, err)
	}
	return s.baseURL + "/" + clean, nil
}

func (s *localStore) Delete(_ context.Context, key string) error {
	dest, clean, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", clean, err)
	}
	return nil
}

// resolve maps key to a path under dir, rejecting keys that are not clean
// relative paths.
func (s *localStore) resolve(key string) (dest, clean string, err error) {
	clean = path.Clean("/" + key)[1:]
	if clean == "" || clean != key {
		return "", "", fmt.Errorf("invalid media key %q", key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), clean, nil
}
