package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilesystemStoreUploadAndURL(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystemStore(root, "https://cdn.example.com/posters/")
	require.NoError(t, err)

	err = store.Upload(context.Background(), "7/1700000000000.png", []byte("data"), "image/png")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "7", "1700000000000.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("data"), data)

	require.Equal(t,
		"https://cdn.example.com/posters/7/1700000000000.png",
		store.PublicURL("7/1700000000000.png"))
}

func TestFilesystemStoreContainsPaths(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystemStore(root, "https://cdn.example.com")
	require.NoError(t, err)

	// parent traversal is neutralized, the write stays inside the root
	err = store.Upload(context.Background(), "../../outside.png", []byte("x"), "image/png")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "outside.png"))
	require.NoError(t, err)

	err = store.Upload(context.Background(), "", []byte("x"), "image/png")
	require.Error(t, err)
}
