package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/sourcestack/internal/search"
	"github.com/honeycarbs/sourcestack/internal/storage/sheets"
	"github.com/honeycarbs/sourcestack/pkg/logging"
)

var (
	// ErrRecorderDisabled is returned when persisting is requested without Neo4j settings
	ErrRecorderDisabled = errors.New("result recording is not configured: set NEO4J_URI, NEO4J_USERNAME and NEO4J_PASSWORD")
	// ErrExporterDisabled is returned when a sheet export is requested without credentials
	ErrExporterDisabled = errors.New("sheets export is not configured: set GOOGLE_SHEETS_CREDENTIALS_PATH")
)

// Recorder persists a search result
type Recorder interface {
	Record(ctx context.Context, label string, result search.Result) error
}

// Exporter writes result statistics to a spreadsheet
type Exporter interface {
	Export(ctx context.Context, sheet sheets.Sheet, result search.Result) error
}

// Resources bundles everything the CLI and the MCP server share.
// Recorder and Exporter are nil when their backends are not configured.
type Resources struct {
	Search   *search.Service
	Recorder Recorder
	Exporter Exporter
	Logger   *logging.Logger
}

// PublishOptions selects the sinks a result is sent to
type PublishOptions struct {
	Persist bool
	Sheet   *sheets.Sheet
}

// Requested reports whether any sink was asked for
func (o PublishOptions) Requested() bool {
	return o.Persist || o.Sheet != nil
}

func newResources(svc *search.Service, recorder Recorder, exporter Exporter, logger *logging.Logger) *Resources {
	return &Resources{
		Search:   svc,
		Recorder: recorder,
		Exporter: exporter,
		Logger:   logger,
	}
}

// Publish sends result to the requested sinks. Every requested sink is tried;
// failures are joined.
func (r *Resources) Publish(ctx context.Context, label string, result search.Result, opts PublishOptions) error {
	var errs []error

	if opts.Persist {
		if err := r.record(ctx, label, result); err != nil {
			errs = append(errs, err)
		}
	}

	if opts.Sheet != nil {
		if err := r.export(ctx, *opts.Sheet, result); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (r *Resources) record(ctx context.Context, label string, result search.Result) error {
	if r.Recorder == nil {
		return ErrRecorderDisabled
	}
	if err := r.Recorder.Record(ctx, label, result); err != nil {
		r.log().Error("failed to record result", "label", label, "err", err)
		return fmt.Errorf("persist: %w", err)
	}
	r.log().Info("result recorded", "label", label, "count", result.Count)
	return nil
}

func (r *Resources) export(ctx context.Context, sheet sheets.Sheet, result search.Result) error {
	if r.Exporter == nil {
		return ErrExporterDisabled
	}
	if err := r.Exporter.Export(ctx, sheet, result); err != nil {
		r.log().Error("failed to export statistics", "spreadsheet_id", sheet.SpreadsheetID, "err", err)
		return fmt.Errorf("sheet: %w", err)
	}
	r.log().Info("statistics exported", "spreadsheet_id", sheet.SpreadsheetID, "tab", sheet.Tab)
	return nil
}

func (r *Resources) log() *logging.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}
