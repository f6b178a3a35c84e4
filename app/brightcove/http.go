package brightcove

import (
	"net/http"
	"time"
)

// NewHTTPClient returns a client tuned for one batch fetch followed by a burst of
// concurrent per-video source fetches against the same host.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = timeout

	return &http.Client{
		Timeout:   timeout,
		Transport: t,
	}
}
