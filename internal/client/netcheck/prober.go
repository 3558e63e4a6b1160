// Package netcheck classifies connectivity to the remote service as online
// or offline with a single bounded-latency probe of its health endpoint.
package netcheck

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/k4jlpg/inventory/internal/logging"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 2 * time.Second

// Checker reports whether the remote service is reachable right now.
type Checker interface {
	IsOnline(ctx context.Context) bool
}

// Prober probes GET {baseURL}/health.
type Prober struct {
	url     string
	timeout time.Duration
	http    *http.Client
	log     logging.Logger
}

// NewProber returns a Prober for the service at baseURL. A non-positive
// timeout selects DefaultTimeout.
func NewProber(baseURL string, timeout time.Duration, log logging.Logger) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Prober{
		url:     strings.TrimRight(baseURL, "/") + "/health",
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// IsOnline sends one probe and reports true iff a response with a status in
// [200, 500) arrives within the timeout. It never retries.
func (p *Prober) IsOnline(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.log.Warn(ctx, "connectivity probe failed, assuming offline", "error", err)
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		p.log.Debug(ctx, "connectivity probe failed, assuming offline", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 500
}

// Watch probes every interval until ctx is done and calls fn with the first
// result and then on every change of state. A non-positive interval reports
// the first result only.
func (p *Prober) Watch(ctx context.Context, interval time.Duration, fn func(online bool)) {
	watch(ctx, p, interval, fn)
}

func watch(ctx context.Context, c Checker, interval time.Duration, fn func(online bool)) {
	last := c.IsOnline(ctx)
	fn(last)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			online := c.IsOnline(ctx)
			if online != last {
				last = online
				fn(online)
			}
		case <-ctx.Done():
			return
		}
	}
}
