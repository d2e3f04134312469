package adapter

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"carrier-gateway/internal/core/httpclient"
)

// Transport submits a prepared XML document to a carrier endpoint and returns
// the raw response body.
type Transport interface {
	Submit(endpoint, body string, test bool) ([]byte, error)
}

// HTTPTransport posts documents to the carrier's XML gateway.
type HTTPTransport struct {
	client *http.Client
}

func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{client: httpclient.NewClient(timeout)}
}

func (t *HTTPTransport) Submit(endpoint, body string, test bool) ([]byte, error) {
	base := upsLiveURL
	if test {
		base = upsTestURL
	}
	url := base + "/" + endpoint

	resp, err := t.client.Post(url, "application/xml", strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("carrier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carrier returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read carrier response: %w", err)
	}

	return raw, nil
}
