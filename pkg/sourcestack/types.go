package sourcestack

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrMissingAPIKey is returned when no API key can be resolved
var ErrMissingAPIKey = errors.New("sourcestack: api key is required")

// Config defines SourceStack API client settings
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the SourceStack REST API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Job is one job posting exactly as the API returned it
type Job map[string]any

// Filter is a single advanced search condition on the wire
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// AdvancedQuery is the POST /jobs body
type AdvancedQuery struct {
	Filters []Filter `json:"filters"`
}

type jobsEnvelope struct {
	Data []Job `json:"data"`
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("sourcestack: API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("sourcestack: API error (%d): %s", e.StatusCode, e.Body)
}
