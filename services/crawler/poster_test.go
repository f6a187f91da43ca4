package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"escapelog-backend/lib/blobstore"

	"github.com/stretchr/testify/require"
)

func TestPosterIngestionFirstWriteWins(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	root := t.TempDir()
	blob, err := blobstore.NewFilesystemStore(root, "http://localhost/posters")
	require.NoError(t, err)

	svc, cleanup := setupCrawler(t, Options{Blob: blob})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	adapter := fakeAdapter{
		source: "fake",
		rows: []RawRoom{{
			VendorName: "키이스케이프",
			ThemeName:  "머니머니패키지",
			Region:     "강남",
			PosterURL:  server.URL + "/poster.png",
		}},
	}

	first := svc.Run(ctx, adapter)
	require.Empty(t, first.Errors)
	require.Equal(t, 1, first.PostersUploaded)
	require.Equal(t, 1, hits)

	vendors, err := svc.store.SelectVendorsByNames(ctx, []string{"키이스케이프"})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	room, err := svc.store.GetRoomByTheme(ctx, vendors[0].ID, "머니머니패키지")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(room.PosterPath, ".png"), room.PosterPath)
	require.Contains(t, room.PosterPath, "/")

	data, err := os.ReadFile(filepath.Join(root, room.PosterPath))
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)

	// the second run must not even attempt a download
	second := svc.Run(ctx, adapter)
	require.Equal(t, 0, second.PostersUploaded)
	require.Equal(t, 1, hits)

	unchanged, err := svc.store.GetRoomByTheme(ctx, vendors[0].ID, "머니머니패키지")
	require.NoError(t, err)
	require.Equal(t, room.PosterPath, unchanged.PosterPath)
}

func TestPosterIngestionDisabledWithoutBlobStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected download")
	}))
	defer server.Close()

	svc, cleanup := setupCrawler(t, Options{})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result := svc.Run(ctx, fakeAdapter{
		source: "fake",
		rows: []RawRoom{{
			VendorName: "셜록홈즈",
			ThemeName:  "명탐정",
			Region:     "잠실",
			PosterURL:  server.URL + "/poster.jpg",
		}},
	})
	require.Equal(t, 1, result.Inserted)
	require.Equal(t, 0, result.PostersUploaded)
}

func TestPosterDownloadFailureIsNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	blob, err := blobstore.NewFilesystemStore(t.TempDir(), "http://localhost/posters")
	require.NoError(t, err)

	svc, cleanup := setupCrawler(t, Options{Blob: blob})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	result := svc.Run(ctx, fakeAdapter{
		source: "fake",
		rows: []RawRoom{{
			VendorName: "비트포비아",
			ThemeName:  "층간소음",
			Region:     "대학로",
			PosterURL:  server.URL + "/poster.jpg",
		}},
	})
	require.Equal(t, 1, result.Inserted)
	require.Equal(t, 0, result.PostersUploaded)
	require.Empty(t, result.Errors)
}
