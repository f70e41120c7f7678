package imagefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/goimg/models"
)

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("writes response body byte-for-byte", func(t *testing.T) {
		imageBytes := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(imageBytes)
		}))
		defer server.Close()

		outputPath := filepath.Join(t.TempDir(), "image.jpg")

		err := Download(ctx, server.Client(), server.URL, outputPath)
		require.NoError(t, err)

		written, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Equal(t, imageBytes, written)
	})

	t.Run("truncates a pre-existing file", func(t *testing.T) {
		imageBytes := []byte("short")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(imageBytes)
		}))
		defer server.Close()

		outputPath := filepath.Join(t.TempDir(), "image.jpg")
		require.NoError(t, os.WriteFile(outputPath, []byte("a much longer pre-existing file"), 0o644))

		err := Download(ctx, server.Client(), server.URL, outputPath)
		require.NoError(t, err)

		written, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Equal(t, imageBytes, written)
	})

	t.Run("non-200 status creates no file", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}))
		defer server.Close()

		outputPath := filepath.Join(t.TempDir(), "image.jpg")

		err := Download(ctx, server.Client(), server.URL, outputPath)

		var downloadErr *models.DownloadError
		require.ErrorAs(t, err, &downloadErr)
		_, statErr := os.Stat(outputPath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("transport failure reports DownloadError", func(t *testing.T) {
		server := httptest.NewServer(nil)
		url := server.URL
		server.Close()

		err := Download(ctx, http.DefaultClient, url, filepath.Join(t.TempDir(), "image.jpg"))

		var downloadErr *models.DownloadError
		require.ErrorAs(t, err, &downloadErr)
	})

	t.Run("nil client falls back to the default client", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		outputPath := filepath.Join(t.TempDir(), "image.jpg")
		require.NoError(t, Download(ctx, nil, server.URL, outputPath))
	})
}
