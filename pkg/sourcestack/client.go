package sourcestack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production API endpoint
	DefaultBaseURL = "https://sourcestack-api.com"

	// EnvAPIKey and EnvBaseURL are consulted when Config leaves them empty
	EnvAPIKey  = "SOURCESTACK_API_KEY"
	EnvBaseURL = "SOURCESTACK_BASE_URL"

	apiKeyHeader   = "X-API-KEY"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
)

// NewClient instantiates a SourceStack API client
func NewClient(cfg Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv(EnvBaseURL)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("sourcestack: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the resolved API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Jobs returns the jobs resource
func (c *Client) Jobs() *Jobs {
	return &Jobs{client: c}
}

// Get issues an authenticated GET and decodes the JSON body into out
func (c *Client) Get(ctx context.Context, resource string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, resource, params, nil, out)
}

// Post issues an authenticated POST with a JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, resource string, body any, params url.Values, out any) error {
	return c.do(ctx, http.MethodPost, resource, params, body, out)
}

func (c *Client) do(ctx context.Context, method, resource string, params url.Values, body any, out any) error {
	if c == nil {
		return fmt.Errorf("sourcestack: client is nil")
	}

	u, err := c.buildURL(resource, params)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("sourcestack: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("sourcestack: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sourcestack: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sourcestack: decode response: %w", err)
	}
	return nil
}

func (c *Client) buildURL(resource string, params url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("sourcestack: parse base url: %w", err)
	}

	u.Path = path.Join("/", u.Path, resource)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}
