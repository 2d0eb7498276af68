package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"enrichcli/internal/dataprocessing"
	ierrors "enrichcli/internal/errors"
	"enrichcli/internal/files"
)

// jsonDocument is the envelope written around the record sequence.
type jsonDocument struct {
	Records     []*dataprocessing.Record `json:"records"`
	Count       int                      `json:"count"`
	GeneratedAt string                   `json:"generated_at"`
}

// WriteJSON writes the records as an indented JSON document. Each record is
// an object whose keys follow column insertion order; all values are strings
// and the marker stays "-".
func WriteJSON(path string, records []*dataprocessing.Record) error {
	if len(records) == 0 {
		return ierrors.NewValidationError("no records to export")
	}

	if err := files.EnsureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return ierrors.NewStorageError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer file.Close()

	doc := jsonDocument{
		Records:     records,
		Count:       len(records),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return ierrors.NewStorageError("failed to encode JSON", err)
	}

	slog.Info("JSON written",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	return nil
}
