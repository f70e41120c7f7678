// Package imagefetch fetches generated image bytes over HTTP and writes
// them to a local file. Providers share it as the final step of image
// generation.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/1broseidon/goimg/models"
)

// Download issues a GET to url and writes the response body to outputPath,
// truncating any existing file. Nothing is written unless the response
// status is 200. Network failures and non-200 statuses are reported as
// *models.DownloadError.
func Download(ctx context.Context, client *http.Client, url string, outputPath string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &models.DownloadError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &models.DownloadError{}
	}

	return writeFile(outputPath, resp.Body)
}

func writeFile(outputPath string, body io.Reader) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	return nil
}
