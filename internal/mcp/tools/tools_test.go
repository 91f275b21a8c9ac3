package tools

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/sourcestack/internal/app"
	"github.com/honeycarbs/sourcestack/internal/search"
	"github.com/honeycarbs/sourcestack/internal/storage/sheets"
	"github.com/honeycarbs/sourcestack/pkg/sourcestack"
)

type fakeJobs struct {
	entries    []sourcestack.Job
	err        error
	lastParams url.Values
	lastQuery  sourcestack.AdvancedQuery
}

func (f *fakeJobs) List(_ context.Context, params url.Values) ([]sourcestack.Job, error) {
	f.lastParams = params
	return f.entries, f.err
}

func (f *fakeJobs) SearchAdvanced(_ context.Context, query sourcestack.AdvancedQuery, params url.Values) ([]sourcestack.Job, error) {
	f.lastQuery = query
	f.lastParams = params
	return f.entries, f.err
}

type fakePublisher struct {
	label string
	opts  app.PublishOptions
	err   error
	calls int
}

func (f *fakePublisher) Publish(_ context.Context, label string, _ search.Result, opts app.PublishOptions) error {
	f.calls++
	f.label = label
	f.opts = opts
	return f.err
}

func newSearcher(t *testing.T, jobs *fakeJobs) *search.Service {
	t.Helper()
	svc, err := search.NewService(
		search.WithJobsClient(jobs),
		search.WithClock(func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }),
	)
	require.NoError(t, err)
	return svc
}

func sampleJobs() []sourcestack.Job {
	return []sourcestack.Job{
		{"company_name": "Canva", "tags_matched": []any{"AWS"}, "tag_categories": []any{"Cloud"}},
		{"company_name": "Atlassian", "tags_matched": []any{"AWS", "Go"}},
	}
}

func ptr[T any](v T) *T { return &v }

func TestSearchJobs_Success(t *testing.T) {
	jobs := &fakeJobs{entries: sampleJobs()}
	tool := searchJobsTool{searcher: newSearcher(t, jobs)}

	res, out, err := tool.handle(context.Background(), nil, SearchJobsParams{
		UsesProduct: ptr("AWS"),
		Limit:       ptr(10),
	})
	require.NoError(t, err)

	assert.Equal(t, search.StatusSuccess, out.Status)
	assert.Equal(t, 2, out.Count)
	require.NotNil(t, out.Pagination)
	assert.Equal(t, 10, out.Pagination.Limit)
	assert.Equal(t, "AWS", jobs.lastParams.Get("uses_product"))
	assert.Equal(t, "true", jobs.lastParams.Get("exact"))

	require.Len(t, res.Content, 1)
	assert.Contains(t, summarize(out), "Top technologies: AWS (2), Go (1)")
}

func TestSearchJobs_InvalidParams(t *testing.T) {
	jobs := &fakeJobs{}
	tool := searchJobsTool{searcher: newSearcher(t, jobs)}

	_, _, err := tool.handle(context.Background(), nil, SearchJobsParams{Name: ptr("x"), URL: ptr("y")})
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrInvalidQuery)
	assert.Nil(t, jobs.lastParams)
}

func TestSearchJobs_Publishes(t *testing.T) {
	jobs := &fakeJobs{entries: sampleJobs()}
	pub := &fakePublisher{}
	tool := searchJobsTool{searcher: newSearcher(t, jobs), publisher: pub}

	sheet := &sheets.Sheet{SpreadsheetID: "abc"}
	_, _, err := tool.handle(context.Background(), nil, SearchJobsParams{
		URL:     ptr("https://www.canva.com"),
		Persist: true,
		Sheet:   sheet,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, pub.calls)
	assert.Equal(t, "url=canva.com", pub.label)
	assert.True(t, pub.opts.Persist)
	assert.Equal(t, sheet, pub.opts.Sheet)
}

func TestSearchJobs_NoPublishWithoutRequest(t *testing.T) {
	pub := &fakePublisher{}
	tool := searchJobsTool{searcher: newSearcher(t, &fakeJobs{entries: sampleJobs()}), publisher: pub}

	_, _, err := tool.handle(context.Background(), nil, SearchJobsParams{Name: ptr("Engineer")})
	require.NoError(t, err)
	assert.Equal(t, 0, pub.calls)
}

func TestSearchJobs_PublishFailure(t *testing.T) {
	pub := &fakePublisher{err: app.ErrRecorderDisabled}
	tool := searchJobsTool{searcher: newSearcher(t, &fakeJobs{entries: sampleJobs()}), publisher: pub}

	_, _, err := tool.handle(context.Background(), nil, SearchJobsParams{Name: ptr("Engineer"), Persist: true})
	assert.ErrorIs(t, err, app.ErrRecorderDisabled)
}

func TestSearchJobs_TransportFailure(t *testing.T) {
	jobs := &fakeJobs{err: errors.New("connection reset")}
	tool := searchJobsTool{searcher: newSearcher(t, jobs)}

	_, _, err := tool.handle(context.Background(), nil, SearchJobsParams{Parent: ptr("Google")})
	assert.ErrorIs(t, err, search.ErrTransport)
}

func TestSearchJobsAdvanced_Success(t *testing.T) {
	jobs := &fakeJobs{entries: sampleJobs()}
	pub := &fakePublisher{}
	tool := searchJobsAdvancedTool{searcher: newSearcher(t, jobs), publisher: pub}

	_, out, err := tool.handle(context.Background(), nil, SearchJobsAdvancedParams{
		Filters: []any{
			map[string]any{"field": "tags_matched", "operator": "CONTAINS_ANY", "value": []any{"AWS"}},
			map[string]any{"field": "remote", "operator": "EQUALS", "value": true},
		},
		Limit:   ptr(5),
		Persist: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Count)
	assert.Nil(t, out.Pagination)
	assert.Len(t, jobs.lastQuery.Filters, 2)
	assert.Equal(t, "5", jobs.lastParams.Get("limit"))
	assert.Equal(t, "tags_matched CONTAINS_ANY [AWS] AND remote EQUALS true", pub.label)
}

func TestSearchJobsAdvanced_InvalidFilters(t *testing.T) {
	jobs := &fakeJobs{}
	tool := searchJobsAdvancedTool{searcher: newSearcher(t, jobs)}

	_, _, err := tool.handle(context.Background(), nil, SearchJobsAdvancedParams{
		Filters: []any{map[string]any{"field": "remote", "operator": "MAYBE", "value": true}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrInvalidQuery)
	assert.Empty(t, jobs.lastQuery.Filters)
}

func TestSummarize_NoResults(t *testing.T) {
	msg := summarize(search.Result{Status: search.StatusError, Message: "No results found", Timestamp: "2025-03-14T09:26:53.000000Z"})
	assert.Equal(t, "No results found (2025-03-14T09:26:53.000000Z)", msg)
}

func TestSummarize_EmptyDimension(t *testing.T) {
	msg := summarize(search.Result{
		Status:     search.StatusSuccess,
		Count:      1,
		Timestamp:  "ts",
		Statistics: &search.Statistics{Companies: []search.Stat{{Name: "Unknown", Count: 1}}},
	})
	assert.Contains(t, msg, "Top companies: Unknown (1)")
	assert.Contains(t, msg, "Top categories: none")
}
