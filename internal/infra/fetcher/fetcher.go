// Package fetcher downloads reference tables into the local cache.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/infra/httpclient"
	"github.com/evlt/nutstools/internal/ports"
)

// Streamer sends a request and copies a 2xx body into dst;
// *httpclient.Executor satisfies it.
type Streamer interface {
	Stream(ctx context.Context, req *http.Request, dst io.Writer) (httpclient.Transfer, error)
}

type Fetcher struct {
	exec Streamer
	log  *slog.Logger
}

type Option func(*Fetcher)

func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.log = l
		}
	}
}

func New(exec Streamer, opts ...Option) *Fetcher {
	f := &Fetcher{
		exec: exec,
		log:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.TableFetcher = (*Fetcher)(nil)

// FetchIfMissing downloads url to cachePath unless the file is already
// cached and force is false. Failures are logged and reported as false;
// a failed download never leaves a file behind.
func (f *Fetcher) FetchIfMissing(ctx context.Context, url, cachePath string, force bool) bool {
	if !force {
		if info, err := os.Stat(cachePath); err == nil && !info.IsDir() {
			f.log.Info("fetch.skipped", "path", cachePath, "reason", "cached")
			return true
		}
	}

	if err := f.fetch(ctx, url, cachePath); err != nil {
		f.log.Warn("fetch.failed", "url", url, "path", cachePath, "error", err.Error())
		return false
	}
	return true
}

func (f *Fetcher) fetch(ctx context.Context, url, cachePath string) error {
	req, err := httpclient.NewGetRequest(ctx, url)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cachePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{Op: "fetcher.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	// Readers only ever see a complete file: stream into .part, rename on success.
	tmp := cachePath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return &domain.OpError{Op: "fetcher.create", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	discard := func() {
		_ = out.Close()
		_ = os.Remove(tmp)
	}

	f.log.Debug("fetch.request", "url", url)
	tr, err := f.exec.Stream(ctx, req, out)
	if err != nil {
		discard()
		return &domain.OpError{Op: "fetcher.get", Kind: domain.KindNetwork, Path: url, Err: err}
	}
	if !tr.OK() {
		discard()
		return &domain.OpError{
			Op:   "fetcher.get",
			Kind: domain.KindNetwork,
			Path: url,
			Err:  fmt.Errorf("unexpected status %d: %w", tr.Status, domain.ErrNetwork),
		}
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "fetcher.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, cachePath); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "fetcher.rename", Kind: domain.KindExecution, Path: cachePath, Err: err}
	}

	f.log.Info("fetch.done",
		"url", url,
		"path", cachePath,
		"size", humanize.Bytes(uint64(tr.Bytes)),
		"duration_ms", tr.Duration.Milliseconds(),
	)
	return nil
}
