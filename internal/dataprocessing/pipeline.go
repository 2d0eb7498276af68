package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	ierrors "enrichcli/internal/errors"
)

// Options configures a Pipeline. All configuration is passed in once here
// and threaded into the transforms as plain parameters; the transforms never
// read ambient configuration themselves.
type Options struct {
	// DateColumn names the column holding the trading date.
	DateColumn string
	// DateLayout is the time.Parse layout for DateColumn values.
	DateLayout string
	// VolumeColumn names the traded-volume column.
	VolumeColumn string
	// PriceColumns names the price fields (typically open/high/low/close),
	// each of which gets its own change and moving-average columns.
	PriceColumns []string
	// Windows lists the moving-average window lengths, in the order their
	// columns are appended.
	Windows []int
}

// Pipeline composes the enrichment stages into a single pure transform:
// sort by date, volume change, price changes, then one moving-average pass
// per configured window length.
type Pipeline struct {
	opts Options
}

// NewPipeline validates the options and builds a pipeline. Window lengths
// must be positive; violations are configuration errors raised here, before
// any row is processed.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.DateColumn == "" {
		return nil, ierrors.NewValidationError("date column must be configured")
	}
	if opts.DateLayout == "" {
		return nil, ierrors.NewValidationError("date layout must be configured")
	}
	if opts.VolumeColumn == "" {
		return nil, ierrors.NewValidationError("volume column must be configured")
	}
	if len(opts.PriceColumns) == 0 {
		return nil, ierrors.NewValidationError("at least one price column must be configured")
	}
	if len(opts.Windows) == 0 {
		return nil, ierrors.NewConfigError("no window lengths configured", nil)
	}
	for _, w := range opts.Windows {
		if w <= 0 {
			return nil, ierrors.NewConfigError(
				fmt.Sprintf("window length must be positive, got %d", w), nil)
		}
	}
	return &Pipeline{opts: opts}, nil
}

// Run executes the enrichment stages in order against the full record
// sequence and returns the enriched sequence. Each stage consumes the
// previous stage's complete output. A required column missing from the
// input is a structural error; no partial output is produced.
func (p *Pipeline) Run(ctx context.Context, records []*Record) ([]*Record, error) {
	logger := slog.Default()

	if len(records) == 0 {
		logger.WarnContext(ctx, "no records to enrich")
		return []*Record{}, nil
	}

	if err := p.checkRequiredColumns(records[0]); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "starting enrichment pipeline",
		slog.Int("record_count", len(records)),
		slog.Any("windows", p.opts.Windows))

	sorted, err := SortByDate(records, p.opts.DateColumn, p.opts.DateLayout)
	if err != nil {
		return nil, err
	}

	enriched := VolumeChange(sorted, p.opts.VolumeColumn)
	enriched = PriceChanges(enriched, p.opts.PriceColumns)

	for _, window := range p.opts.Windows {
		enriched = MovingAverages(enriched, p.opts.PriceColumns, window)
		logger.DebugContext(ctx, "moving averages computed",
			slog.Int("window", window),
			slog.Int("price_fields", len(p.opts.PriceColumns)))
	}

	logger.InfoContext(ctx, "enrichment pipeline complete",
		slog.Int("record_count", len(enriched)),
		slog.Int("column_count", len(enriched[0].Columns())))

	return enriched, nil
}

// checkRequiredColumns verifies every consumed column exists in the input.
func (p *Pipeline) checkRequiredColumns(record *Record) error {
	required := append([]string{p.opts.DateColumn, p.opts.VolumeColumn}, p.opts.PriceColumns...)
	var missing []string
	for _, col := range required {
		if _, ok := record.Get(col); !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return ierrors.NewStructuralError(
			fmt.Sprintf("required columns not found: %v", missing), nil).
			WithContext("missing_columns", missing)
	}
	return nil
}
