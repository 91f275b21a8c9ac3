package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/sourcestack/pkg/logging"
	"github.com/honeycarbs/sourcestack/pkg/sourcestack"
)

// JobsClient describes the subset of the SourceStack jobs resource used by Service
type JobsClient interface {
	List(ctx context.Context, params url.Values) ([]sourcestack.Job, error)
	SearchAdvanced(ctx context.Context, query sourcestack.AdvancedQuery, params url.Values) ([]sourcestack.Job, error)
}

var _ JobsClient = (*sourcestack.Jobs)(nil)

// Option configures Service
type Option func(*config)

type config struct {
	jobs   JobsClient
	clock  func() time.Time
	logger *logging.Logger
}

// WithJobsClient sets the transport
func WithJobsClient(jobs JobsClient) Option {
	return func(c *config) {
		c.jobs = jobs
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Service runs simple and advanced job searches and summarizes the results.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	jobs   JobsClient
	clock  func() time.Time
	logger *logging.Logger
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.jobs == nil {
		return nil, &SearchError{Message: "search.Service: jobs client is required", Err: ErrConfiguration}
	}
	if cfg.clock == nil {
		cfg.clock = time.Now
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &Service{
		jobs:   cfg.jobs,
		clock:  cfg.clock,
		logger: cfg.logger,
	}, nil
}

// NewServiceWithDeps creates a Service from a SourceStack client (Wire-compatible)
func NewServiceWithDeps(client *sourcestack.Client, logger *logging.Logger) (*Service, error) {
	if client == nil {
		return nil, &SearchError{Message: "search.Service: client is required", Err: ErrConfiguration}
	}
	return NewService(WithJobsClient(client.Jobs()), WithLogger(logger))
}

// NewFromCredentials resolves the API key and base URL from the arguments or
// SOURCESTACK_API_KEY / SOURCESTACK_BASE_URL and builds a Service.
func NewFromCredentials(apiKey, baseURL string, opts ...Option) (*Service, error) {
	client, err := sourcestack.NewClient(sourcestack.Config{APIKey: apiKey, BaseURL: baseURL})
	if err != nil {
		msg := "failed to create SourceStack client"
		if errors.Is(err, sourcestack.ErrMissingAPIKey) {
			msg = "no API key provided and " + sourcestack.EnvAPIKey + " environment variable not set"
		}
		return nil, &SearchError{Message: msg, Err: fmt.Errorf("%w: %w", ErrConfiguration, err)}
	}

	return NewService(append([]Option{WithJobsClient(client.Jobs())}, opts...)...)
}

// SearchJobs validates params, runs a simple search and summarizes the entries.
// When a limit was given the result carries a pagination block.
func (s *Service) SearchJobs(ctx context.Context, params Params) (Result, error) {
	req, err := params.Request()
	if err != nil {
		s.logger.Debug("search rejected", "err", err)
		return Result{}, err
	}
	return s.Search(ctx, req)
}

// Search runs an already built simple search
func (s *Service) Search(ctx context.Context, req Request) (Result, error) {
	if req.Criterion() == nil {
		return Result{}, invalidQuery("exactly one search parameter required from: %s", primaryKeyList())
	}

	log := s.logger.With("request_id", uuid.NewString(), "mode", string(req.Criterion().Mode()))
	values := BuildSimple(req)
	log.Debug("dispatching search", "params", values.Encode())

	entries, err := s.jobs.List(ctx, values)
	if err != nil {
		log.Error("search transport failed", "err", err)
		return Result{}, wrapTransport("search failed", err)
	}

	result := Aggregate(entries, s.clock())
	if limit, ok := req.Limit(); ok {
		result.Pagination = &Pagination{Limit: limit, Total: len(entries)}
	}

	log.Info("search completed", "status", result.Status, "count", result.Count)
	return result, nil
}

// SearchJobsAdvanced validates filters and runs a POST /jobs search.
// No pagination block is attached, even when limit is set.
func (s *Service) SearchJobsAdvanced(ctx context.Context, filters []Filter, limit *int) (Result, error) {
	if err := ValidateFilters(filters); err != nil {
		s.logger.Debug("advanced search rejected", "err", err)
		return Result{}, err
	}

	log := s.logger.With("request_id", uuid.NewString(), "filters", len(filters))
	body, values := BuildAdvanced(filters, limit)
	log.Debug("dispatching advanced search", "params", values.Encode())

	entries, err := s.jobs.SearchAdvanced(ctx, body, values)
	if err != nil {
		log.Error("advanced search transport failed", "err", err)
		return Result{}, wrapTransport("advanced search failed", err)
	}

	result := Aggregate(entries, s.clock())
	log.Info("advanced search completed", "status", result.Status, "count", result.Count)
	return result, nil
}

func wrapTransport(prefix string, err error) *SearchError {
	status := 0
	var apiErr *sourcestack.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	return transportFailure(fmt.Sprintf("%s: %v", prefix, err), status, err)
}
