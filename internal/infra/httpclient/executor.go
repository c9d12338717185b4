package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxBytes bounds a single download. The largest TERCET archives
// are a few MiB.
const DefaultMaxBytes int64 = 256 << 20

// ErrTooLarge is returned when a response body exceeds the size limit.
var ErrTooLarge = errors.New("response body exceeds size limit")

// Transfer summarizes a completed request.
type Transfer struct {
	Status      int
	ContentType string
	Bytes       int64
	Duration    time.Duration
}

// OK reports a 2xx status.
func (t Transfer) OK() bool {
	return t.Status >= 200 && t.Status < 300
}

// Executor streams HTTP response bodies into a writer.
type Executor struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

type ExecutorOption func(*Executor)

// WithTimeout bounds each request, including reading the body.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = timeout }
}

func WithClient(client *http.Client) ExecutorOption {
	return func(e *Executor) { e.client = client }
}

// WithMaxBytes caps the body size; zero or less disables the cap.
func WithMaxBytes(n int64) ExecutorOption {
	return func(e *Executor) { e.maxBytes = n }
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		client:   New(cfg),
		timeout:  cfg.Timeout,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stream sends req and copies a 2xx body into dst. Non-2xx bodies are
// discarded and reported only through Transfer.Status.
func (e *Executor) Stream(ctx context.Context, req *http.Request, dst io.Writer) (Transfer, error) {
	start := time.Now()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.Do(req.WithContext(ctx))
	if err != nil {
		return Transfer{Duration: time.Since(start)}, err
	}
	defer resp.Body.Close()

	t := Transfer{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type")}
	if !t.OK() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		t.Duration = time.Since(start)
		return t, nil
	}

	var body io.Reader = resp.Body
	if e.maxBytes > 0 {
		body = io.LimitReader(resp.Body, e.maxBytes+1)
	}
	t.Bytes, err = io.Copy(dst, body)
	t.Duration = time.Since(start)
	if err != nil {
		return t, err
	}
	if e.maxBytes > 0 && t.Bytes > e.maxBytes {
		return t, fmt.Errorf("%w (%d bytes)", ErrTooLarge, e.maxBytes)
	}
	return t, nil
}
