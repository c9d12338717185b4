package ports

import "context"

// TableFetcher downloads a reference table into the local cache.
type TableFetcher interface {
	// FetchIfMissing reports whether the file is available at cachePath
	// afterwards. Network failures are reported as false, never as errors.
	FetchIfMissing(ctx context.Context, url, cachePath string, force bool) bool
}
