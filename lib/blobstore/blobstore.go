package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the poster blob storage contract: write-once uploads
// addressed by a relative path, plus a public URL resolver for that
// path. paths are namespaced per room by the caller.
type Store interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}

// FilesystemStore keeps blobs under a local directory and serves them
// from a configured public base URL (typically a static file host or
// reverse proxy pointed at the same directory).
type FilesystemStore struct {
	root    string
	baseURL string
}

func NewFilesystemStore(root, baseURL string) (FilesystemStore, error) {
	err := os.MkdirAll(root, 0755)
	if err != nil {
		return FilesystemStore{}, err
	}
	return FilesystemStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s FilesystemStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean("/" + path)
	if cleaned == "/" {
		return "", fmt.Errorf("empty blob path")
	}
	return filepath.Join(s.root, cleaned), nil
}

func (s FilesystemStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	err = os.MkdirAll(filepath.Dir(target), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0644)
}

func (s FilesystemStore) PublicURL(path string) string {
	return s.baseURL + filepath.Clean("/"+path)
}
