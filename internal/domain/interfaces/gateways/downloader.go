package gateways

import "context"

// Downloader fetches a URL into a local file and returns the file's path.
// A single attempt is made.
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}
