package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/sourcestack/internal/app"
	"github.com/honeycarbs/sourcestack/internal/search"
)

// Searcher runs simple and advanced searches
type Searcher interface {
	Search(ctx context.Context, req search.Request) (search.Result, error)
	SearchJobsAdvanced(ctx context.Context, filters []search.Filter, limit *int) (search.Result, error)
}

// Publisher forwards a result to the optional sinks
type Publisher interface {
	Publish(ctx context.Context, label string, result search.Result, opts app.PublishOptions) error
}

var (
	_ Searcher  = (*search.Service)(nil)
	_ Publisher = (*app.Resources)(nil)
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	names  []string
}

// Register applies the provided tool options and returns the registered tool names
func Register(server *sdkmcp.Server, opts ...Option) []string {
	reg := &registry{server: server}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	return reg.names
}
