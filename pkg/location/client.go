// pkg/location/client.go
package location

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client downloads source archives over HTTP
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// DefaultClient is used by tar locations that were not given a client
var DefaultClient = NewClientWithTimeout(10 * time.Minute)

// NewClientWithTimeout creates a download client with a custom timeout
func NewClientWithTimeout(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		userAgent: "libcairo-builder/1.0",
	}
}

// Download writes the body of url to w
func (c *Client) Download(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	return nil
}
