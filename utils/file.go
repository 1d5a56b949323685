// utils/file.go
package utils

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes mirrored artwork below Dir and serves it under PublicPrefix.
type LocalStore struct {
	Dir          string
	PublicPrefix string
}

func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to ensure artwork dir: %w", err)
	}
	return &LocalStore{Dir: dir, PublicPrefix: strings.TrimRight(publicPrefix, "/")}, nil
}

// Put stores data under the base name of key. The file is written to a
// temp path first and renamed, so readers never see a partial image.
func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	name := path.Base(key)
	if name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("illegal artwork key: %s", key)
	}
	dest := filepath.Join(s.Dir, name)
	tmp := dest + ".temp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artwork: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move artwork into place: %w", err)
	}
	return s.PublicPrefix + "/" + name, nil
}
