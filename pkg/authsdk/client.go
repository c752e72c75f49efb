package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Endpoint paths relative to the client's base URL.
const (
	loginPath  = "/auth/login"
	signupPath = "/auth/signup"
	logoutPath = "/auth/logout"
)

// Client is an HTTP client for the BillPoint authentication backend.
// All operations return an Envelope rather than a Go error; see the
// package documentation for the normalisation rules.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Logger receives transport and decode failures that the Envelope
	// deliberately flattens into a generic message. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// postJSON sends a single POST with a JSON body (nil for no body) and the
// standard content negotiation headers. The caller owns the response body.
func (c *Client) postJSON(ctx context.Context, path string, body any, headers map[string]string) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.HTTPClient.Do(req)
}
