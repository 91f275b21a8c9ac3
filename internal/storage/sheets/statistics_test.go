package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/sourcestack/internal/search"
)

type fakeAppender struct {
	spreadsheetID string
	range_        string
	values        [][]any
	err           error
}

func (f *fakeAppender) AppendValues(_ context.Context, spreadsheetID, range_ string, values [][]any) error {
	f.spreadsheetID = spreadsheetID
	f.range_ = range_
	f.values = values
	return f.err
}

func sampleResult() search.Result {
	return search.Result{
		Status:    search.StatusSuccess,
		Timestamp: "2025-03-14T09:26:53.589793Z",
		Count:     3,
		Statistics: &search.Statistics{
			Companies:    []search.Stat{{Name: "Acme", Count: 2}, {Name: "Globex", Count: 1}},
			Technologies: []search.Stat{{Name: "Go", Count: 3}},
			Categories:   []search.Stat{},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResult())

	assert.Equal(t, [][]any{
		{"2025-03-14T09:26:53.589793Z", "companies", "Acme", 2},
		{"2025-03-14T09:26:53.589793Z", "companies", "Globex", 1},
		{"2025-03-14T09:26:53.589793Z", "technologies", "Go", 3},
	}, rows)
}

func TestRows_NoStatistics(t *testing.T) {
	assert.Empty(t, Rows(search.Result{Status: search.StatusError, Message: "No results found"}))
}

func TestExport(t *testing.T) {
	t.Run("default tab", func(t *testing.T) {
		f := &fakeAppender{}
		e := &StatisticsExporter{client: f}

		require.NoError(t, e.Export(context.Background(), Sheet{SpreadsheetID: "sheet-1"}, sampleResult()))
		assert.Equal(t, "sheet-1", f.spreadsheetID)
		assert.Equal(t, "'Statistics'!A:D", f.range_)
		assert.Len(t, f.values, 3)
	})

	t.Run("missing spreadsheet", func(t *testing.T) {
		e := &StatisticsExporter{client: &fakeAppender{}}
		assert.ErrorIs(t, e.Export(context.Background(), Sheet{}, sampleResult()), ErrNoSpreadsheet)
	})

	t.Run("nothing to write", func(t *testing.T) {
		f := &fakeAppender{}
		e := &StatisticsExporter{client: f}

		require.NoError(t, e.Export(context.Background(), Sheet{SpreadsheetID: "s", Tab: "Runs"}, search.Result{}))
		assert.Empty(t, f.range_)
	})

	t.Run("append failure", func(t *testing.T) {
		f := &fakeAppender{err: errors.New("quota exceeded")}
		e := &StatisticsExporter{client: f}

		err := e.Export(context.Background(), Sheet{SpreadsheetID: "s", Tab: "Runs"}, sampleResult())
		require.ErrorIs(t, err, f.err)
		assert.Equal(t, "'Runs'!A:D", f.range_)
	})
}
