// Command enrich reads a daily price/volume table (CSV or XLSX), runs the
// enrichment pipeline, and writes the result as CSV or JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"enrichcli/internal/config"
	"enrichcli/internal/dataprocessing"
	"enrichcli/internal/exporter"
	"enrichcli/internal/files"
	"enrichcli/internal/infrastructure"
)

func main() {
	inPath := flag.String("in", "", "input table (.csv or .xlsx); required")
	outPath := flag.String("out", "", "output path (defaults to <input>_enriched.<format>)")
	format := flag.String("format", "csv", "output format: csv or json")
	windows := flag.String("windows", "", "comma-separated moving-average window lengths (default "+config.DefaultWindows+")")
	dateLayout := flag.String("date-layout", "", "date layout for the date column (default 2006-01-02)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	if err := run(*inPath, *outPath, *format, *windows, *dateLayout, *logLevel); err != nil {
		slog.Error("enrichment failed", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
	infrastructure.CloseLogFile()
}

func run(inPath, outPath, format, windows, dateLayout, logLevel string) error {
	if inPath == "" {
		flag.Usage()
		return fmt.Errorf("-in is required")
	}
	if format != "csv" && format != "json" {
		return fmt.Errorf("unsupported output format %q (want csv or json)", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override config
	if windows != "" {
		cfg.Pipeline.Windows = windows
	}
	if dateLayout != "" {
		cfg.Pipeline.DateLayout = dateLayout
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	// Flag values bypass Load's validation, so check the merged config again
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	resolvedIn, err := files.ResolvePath(inPath)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = files.DefaultOutputPath(resolvedIn, format)
	}
	resolvedOut, err := files.ResolvePath(outPath)
	if err != nil {
		return err
	}

	windowList, err := config.ParseWindows(cfg.Pipeline.Windows)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting enrichment run",
		slog.String("input", resolvedIn),
		slog.String("output", resolvedOut),
		slog.String("format", format),
		slog.Any("windows", windowList))

	header, rows, err := files.ReadTable(resolvedIn)
	if err != nil {
		return err
	}

	records, err := dataprocessing.RecordsFromRows(header, rows)
	if err != nil {
		return err
	}

	pipeline, err := dataprocessing.NewPipeline(dataprocessing.Options{
		DateColumn:   cfg.Pipeline.DateColumn,
		DateLayout:   cfg.Pipeline.DateLayout,
		VolumeColumn: cfg.Pipeline.VolumeColumn,
		PriceColumns: cfg.Pipeline.PriceColumns,
		Windows:      windowList,
	})
	if err != nil {
		return err
	}

	enriched, err := pipeline.Run(ctx, records)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		err = exporter.WriteJSON(resolvedOut, enriched)
	default:
		err = exporter.WriteCSV(resolvedOut, enriched)
	}
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "enrichment run complete",
		slog.String("output", resolvedOut),
		slog.Int("record_count", len(enriched)))

	return nil
}
