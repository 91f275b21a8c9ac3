package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/sourcestack/internal/app"
	"github.com/honeycarbs/sourcestack/internal/search"
	"github.com/honeycarbs/sourcestack/internal/storage/sheets"
	"github.com/honeycarbs/sourcestack/pkg/logging"
)

const searchJobsName = "search_jobs"

// SearchJobsParams defines the arguments for the search_jobs tool.
// Exactly one of name, url, parent, uses_product or uses_category is required.
type SearchJobsParams struct {
	Name         *string           `json:"name,omitempty" jsonschema:"Search by job name"`
	URL          *string           `json:"url,omitempty" jsonschema:"Search by company URL"`
	Parent       *string           `json:"parent,omitempty" jsonschema:"Search by parent company"`
	UsesProduct  *string           `json:"uses_product,omitempty" jsonschema:"Search by product usage"`
	UsesCategory *string           `json:"uses_category,omitempty" jsonschema:"Search by product category"`
	Exact        *bool             `json:"exact,omitempty" jsonschema:"Exact matching for name, uses_product and uses_category"`
	Limit        *int              `json:"limit,omitempty" jsonschema:"Maximum number of results to return"`
	Extra        map[string]string `json:"extra,omitempty" jsonschema:"Additional raw query parameters"`
	Persist      bool              `json:"persist,omitempty" jsonschema:"Record the result in Neo4j"`
	Sheet        *sheets.Sheet     `json:"sheet,omitempty" jsonschema:"Append the statistics to this Google Sheet"`
}

func (p SearchJobsParams) query() search.Params {
	return search.Params{
		Name:         p.Name,
		URL:          p.URL,
		Parent:       p.Parent,
		UsesProduct:  p.UsesProduct,
		UsesCategory: p.UsesCategory,
		Exact:        p.Exact,
		Limit:        p.Limit,
		Extra:        p.Extra,
	}
}

type searchJobsTool struct {
	searcher  Searcher
	publisher Publisher
	logger    *logging.Logger
}

// WithSearchJobs registers the search_jobs tool
func WithSearchJobs(searcher Searcher, publisher Publisher, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := searchJobsTool{searcher: searcher, publisher: publisher, logger: logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        searchJobsName,
			Description: "Search SourceStack job postings by name, company URL, parent company, product or product category and summarize the top companies, technologies and categories",
		}, handler.handle)
		reg.names = append(reg.names, searchJobsName)
	}
}

func (t searchJobsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchJobsParams) (*sdkmcp.CallToolResult, search.Result, error) {
	if t.searcher == nil {
		return nil, search.Result{}, fmt.Errorf("search service not configured")
	}

	req, err := params.query().Request()
	if err != nil {
		if t.logger != nil {
			t.logger.Debug("search_jobs: invalid parameters", "err", err)
		}
		return nil, search.Result{}, err
	}

	result, err := t.searcher.Search(ctx, req)
	if err != nil {
		if t.logger != nil {
			t.logger.Error("search_jobs: search failed", "err", err)
		}
		return nil, search.Result{}, err
	}

	label := search.BuildSimple(req).Encode()
	if err := publish(ctx, t.publisher, label, result, app.PublishOptions{Persist: params.Persist, Sheet: params.Sheet}); err != nil {
		if t.logger != nil {
			t.logger.Error("search_jobs: publish failed", "err", err)
		}
		return nil, search.Result{}, err
	}

	if t.logger != nil {
		t.logger.Info("search_jobs completed", "label", label, "count", result.Count)
	}
	return textResult(summarize(result)), result, nil
}

func publish(ctx context.Context, publisher Publisher, label string, result search.Result, opts app.PublishOptions) error {
	if !opts.Requested() {
		return nil
	}
	if publisher == nil {
		return fmt.Errorf("result sinks not configured")
	}
	return publisher.Publish(ctx, label, result, opts)
}
