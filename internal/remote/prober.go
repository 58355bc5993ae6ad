package remote

import (
	"context"
	"net/http"
	"time"
)

// Prober answers whether the network is reachable. The sync loop consults it
// before any remote I/O so that offline operation short-circuits cleanly
// instead of burning a full request timeout.
type Prober interface {
	Online(ctx context.Context) bool
}

// HTTPProber issues a cheap HEAD request against a probe URL.
type HTTPProber struct {
	url    string
	client *http.Client
}

// NewHTTPProber builds a prober with a short dedicated timeout.
func NewHTTPProber(url string) *HTTPProber {
	return &HTTPProber{
		url:    url,
		client: &http.Client{Timeout: 3 * time.Second},
	}
}

// Online reports reachability. Any HTTP response, including an error status,
// proves the network path works.
func (p *HTTPProber) Online(ctx context.Context) bool {
	if p.url == "" {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}
