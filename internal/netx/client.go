// Package netx builds the outbound HTTP client shared by the session and the
// API client.
package netx

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dysh/internal/common"
	"github.com/dmitrijs2005/dysh/internal/logging"
	"github.com/google/uuid"
)

// NewHTTPClient returns a client with the given overall timeout whose
// transport logs every round trip at debug level.
func NewHTTPClient(timeout time.Duration, log logging.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewLoggingTransport(http.DefaultTransport, log),
	}
}

// LoggingTransport wraps an http.RoundTripper and logs method, path, status
// and latency. Tokens and bodies are never logged.
type LoggingTransport struct {
	next http.RoundTripper
	log  logging.Logger
	now  func() time.Time
}

func NewLoggingTransport(next http.RoundTripper, log logging.Logger) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	if log == nil {
		log = logging.Nop()
	}
	return &LoggingTransport{next: next, log: log, now: time.Now}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	id := req.Header.Get(common.RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
		req = req.Clone(ctx)
		req.Header.Set(common.RequestIDHeaderName, id)
	}

	start := t.now()
	resp, err := t.next.RoundTrip(req)
	elapsed := t.now().Sub(start)

	if err != nil {
		t.logFailure(ctx, req, id, elapsed, err)
		return nil, err
	}
	t.log.Debug(ctx, "http request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", id,
		"elapsed", elapsed,
	)
	return resp, nil
}

func (t *LoggingTransport) logFailure(ctx context.Context, req *http.Request, id string, elapsed time.Duration, err error) {
	t.log.Warn(ctx, "http request failed",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", id,
		"elapsed", elapsed,
		"error", err,
	)
}
