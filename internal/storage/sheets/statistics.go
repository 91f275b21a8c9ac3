package sheets

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/sourcestack/internal/search"

	pkgsheets "github.com/honeycarbs/sourcestack/pkg/sheets"
)

const defaultTab = "Statistics"

// Dimension names used in exported rows
const (
	DimensionCompanies    = "companies"
	DimensionTechnologies = "technologies"
	DimensionCategories   = "categories"
)

// ErrNoSpreadsheet is returned when Sheet has no spreadsheet id
var ErrNoSpreadsheet = errors.New("sheets: spreadsheet id is required")

type appender interface {
	AppendValues(ctx context.Context, spreadsheetID, range_ string, values [][]any) error
}

var _ appender = (*pkgsheets.Client)(nil)

// Sheet addresses the destination tab. An empty Tab means "Statistics".
type Sheet struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets spreadsheet id"`
	Tab           string `json:"tab,omitempty" jsonschema:"tab name, defaults to Statistics"`
}

// StatisticsExporter appends result statistics to a Google Sheet
type StatisticsExporter struct {
	client appender
}

func NewStatisticsExporter(client *pkgsheets.Client) *StatisticsExporter {
	return &StatisticsExporter{client: client}
}

// Export appends one row per statistic. Results without statistics write nothing.
func (e *StatisticsExporter) Export(ctx context.Context, sheet Sheet, result search.Result) error {
	if sheet.SpreadsheetID == "" {
		return ErrNoSpreadsheet
	}

	rows := Rows(result)
	if len(rows) == 0 {
		return nil
	}

	tab := sheet.Tab
	if tab == "" {
		tab = defaultTab
	}

	if err := e.client.AppendValues(ctx, sheet.SpreadsheetID, fmt.Sprintf("'%s'!A:D", tab), rows); err != nil {
		return fmt.Errorf("failed to export statistics: %w", err)
	}
	return nil
}

// Rows flattens statistics into timestamp, dimension, name, count rows
func Rows(result search.Result) [][]any {
	if result.Statistics == nil {
		return nil
	}

	var rows [][]any
	add := func(dimension string, stats []search.Stat) {
		for _, s := range stats {
			rows = append(rows, []any{result.Timestamp, dimension, s.Name, s.Count})
		}
	}
	add(DimensionCompanies, result.Statistics.Companies)
	add(DimensionTechnologies, result.Statistics.Technologies)
	add(DimensionCategories, result.Statistics.Categories)

	return rows
}
