package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/DonIsaac/zlint-action/internal/domain/interfaces"
)

// HTTPError reports a download answered with a non-200 status
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP response from %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Downloader fetches release artifacts into a temporary directory
type Downloader struct {
	httpClient *http.Client
	tempDir    string
	userAgent  string
	logger     interfaces.Logger
}

// NewDownloader creates a downloader writing into tempDir. An empty tempDir
// falls back to RUNNER_TEMP, then to the OS temp directory.
func NewDownloader(tempDir, userAgent string, logger interfaces.Logger) *Downloader {
	if tempDir == "" {
		tempDir = os.Getenv("RUNNER_TEMP")
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Downloader{
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // Long timeout for large downloads
		},
		tempDir:   tempDir,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Download fetches url into a uniquely named file and returns its path.
// There is exactly one attempt.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(d.tempDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	dest := filepath.Join(d.tempDir, uuid.NewString())

	if err := d.downloadFile(ctx, url, dest); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("download failed: %w", err)
	}
	return dest, nil
}

// downloadFile downloads a file from URL to destination
func (d *Downloader) downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{URL: url, StatusCode: resp.StatusCode}
	}

	//nolint:gosec // G304: dest is generated inside the download directory
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	d.logger.Debug("Downloaded artifact", interfaces.F("path", dest), interfaces.F("bytes", written))
	return nil
}
