package apiclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// newLoggingTransport wraps next so every call gets a request id and one log
// line with its outcome.
func newLoggingTransport(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = RequestIDFrom(req.Context())
	}
	if id == "" {
		id = uuid.NewString()
	}
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set(RequestIDHeader, id)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		t.logger.WarnContext(req.Context(), "api request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", id,
			"duration_ms", duration,
			"error", err,
		)
		return nil, err
	}

	t.logger.DebugContext(req.Context(), "api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", id,
		"duration_ms", duration,
	)
	return resp, nil
}
