package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes files under a directory that the HTTP server exposes at publicURL.
type LocalStorage struct {
	dir       string
	publicURL string
}

func NewLocalStorage(dir, publicURL string) *LocalStorage {
	return &LocalStorage{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}
}

// Dir is the root directory files are written to.
func (s *LocalStorage) Dir() string { return s.dir }

func (s *LocalStorage) Put(ctx context.Context, file *Prepared) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	folder := filepath.Join(s.dir, string(file.Kind))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("creating upload folder: %w", err)
	}
	if err := os.WriteFile(filepath.Join(folder, file.Name), file.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, file.Kind, file.Name), nil
}
