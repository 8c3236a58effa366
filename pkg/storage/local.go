package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalDriver stores files on the local filesystem and serves them under
// /uploads.
type LocalDriver struct {
	dir     string
	baseURL string
}

// NewLocalDriver creates the upload directory if needed and returns a
// driver rooted there.
func NewLocalDriver(dir, baseURL string) (*LocalDriver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalDriver{dir: dir, baseURL: baseURL}, nil
}

// Save writes the payload to disk. Keys are generated by the caller and
// never contain path separators, so the write stays inside the root.
func (d *LocalDriver) Save(data []byte, key string) (string, error) {
	path := filepath.Join(d.dir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return key, nil
}

// Delete removes a stored file, reporting whether it existed.
func (d *LocalDriver) Delete(key string) bool {
	path := filepath.Join(d.dir, filepath.Base(key))
	if err := os.Remove(path); err != nil {
		return false
	}
	return true
}

// URL returns the public URL the key is served under.
func (d *LocalDriver) URL(key string) string {
	return d.baseURL + "/uploads/" + filepath.Base(key)
}
