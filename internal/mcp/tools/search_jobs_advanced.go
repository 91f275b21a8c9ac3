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

const searchJobsAdvancedName = "search_jobs_advanced"

// SearchJobsAdvancedParams defines the arguments for the search_jobs_advanced tool
type SearchJobsAdvancedParams struct {
	Filters []any         `json:"filters" jsonschema:"Filter conditions, each an object with field, operator and value"`
	Limit   *int          `json:"limit,omitempty" jsonschema:"Maximum number of results to return"`
	Persist bool          `json:"persist,omitempty" jsonschema:"Record the result in Neo4j"`
	Sheet   *sheets.Sheet `json:"sheet,omitempty" jsonschema:"Append the statistics to this Google Sheet"`
}

type searchJobsAdvancedTool struct {
	searcher  Searcher
	publisher Publisher
	logger    *logging.Logger
}

// WithSearchJobsAdvanced registers the search_jobs_advanced tool
func WithSearchJobsAdvanced(searcher Searcher, publisher Publisher, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := searchJobsAdvancedTool{searcher: searcher, publisher: publisher, logger: logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name: searchJobsAdvancedName,
			Description: "Search SourceStack job postings with filter conditions. Operators: " +
				search.OperatorList(),
		}, handler.handle)
		reg.names = append(reg.names, searchJobsAdvancedName)
	}
}

func (t searchJobsAdvancedTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchJobsAdvancedParams) (*sdkmcp.CallToolResult, search.Result, error) {
	if t.searcher == nil {
		return nil, search.Result{}, fmt.Errorf("search service not configured")
	}

	filters, err := search.ParseFilters(params.Filters)
	if err != nil {
		if t.logger != nil {
			t.logger.Debug("search_jobs_advanced: invalid filters", "err", err)
		}
		return nil, search.Result{}, err
	}

	result, err := t.searcher.SearchJobsAdvanced(ctx, filters, params.Limit)
	if err != nil {
		if t.logger != nil {
			t.logger.Error("search_jobs_advanced: search failed", "err", err)
		}
		return nil, search.Result{}, err
	}

	label := search.DescribeFilters(filters)
	if err := publish(ctx, t.publisher, label, result, app.PublishOptions{Persist: params.Persist, Sheet: params.Sheet}); err != nil {
		if t.logger != nil {
			t.logger.Error("search_jobs_advanced: publish failed", "err", err)
		}
		return nil, search.Result{}, err
	}

	if t.logger != nil {
		t.logger.Info("search_jobs_advanced completed", "filters", len(filters), "count", result.Count)
	}
	return textResult(summarize(result)), result, nil
}
