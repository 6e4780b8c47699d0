package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/rollcall/internal/record"
)

// Fetcher retrieves the user collection. *Client implements it; tests and
// the UI depend on the interface.
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]record.Record, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the users endpoint.
type Client struct {
	usersURL  *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultUsersURL is the public sample directory.
	DefaultUsersURL  = "https://jsonplaceholder.typicode.com/users"
	defaultUserAgent = "rollcall/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the users endpoint at rawURL.
func NewClient(rawURL string) (*Client, error) {
	u, err := parseUsersURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		usersURL: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SetUserAgent overrides the User-Agent header sent with each request.
func (c *Client) SetUserAgent(ua string) {
	if strings.TrimSpace(ua) != "" {
		c.userAgent = ua
	}
}

// URL returns the endpoint the client fetches from.
func (c *Client) URL() string {
	if c == nil || c.usersURL == nil {
		return ""
	}
	return c.usersURL.String()
}

// FetchUsers issues one GET and decodes the JSON array of user objects.
// Failures are returned as *FetchError.
func (c *Client) FetchUsers(ctx context.Context) ([]record.Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []record.Record
	if err := c.do(ctx, http.MethodGet, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []record.Record{}
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method string, dest any) error {
	reqURL := c.usersURL.String()
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return &FetchError{URL: reqURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{URL: reqURL, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: reqURL, StatusCode: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &FetchError{URL: reqURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseUsersURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultUsersURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse users_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse users_url %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}
