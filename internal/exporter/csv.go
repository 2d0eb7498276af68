// Package exporter serializes enriched record sequences to CSV and JSON.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"enrichcli/internal/dataprocessing"
	ierrors "enrichcli/internal/errors"
	"enrichcli/internal/files"
)

// WriteCSV writes the records to a CSV file: header row from the first
// record's column order, then one row per record with the marker serialized
// as "-". The file is prefixed with a UTF-8 BOM for Excel compatibility.
func WriteCSV(path string, records []*dataprocessing.Record) error {
	if len(records) == 0 {
		return ierrors.NewValidationError("no records to export")
	}

	stream, err := CreateStreamWriter(path, records[0].Columns())
	if err != nil {
		return err
	}
	defer stream.Close()

	for i, record := range records {
		if err := stream.WriteRecord(record.Values()); err != nil {
			return ierrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	slog.Info("CSV written",
		slog.String("path", path),
		slog.Int("record_count", len(records)),
		slog.Int("column_count", len(records[0].Columns())))

	return stream.Close()
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
	closed bool
}

// CreateStreamWriter creates a new streaming CSV writer
func CreateStreamWriter(path string, headers []string) (*StreamWriter, error) {
	if err := files.EnsureDir(path); err != nil {
		return nil, err
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, ierrors.NewStorageError(fmt.Sprintf("failed to create %s", path), err)
	}

	// Write BOM for Excel compatibility
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		file.Close()
		return nil, ierrors.NewStorageError("failed to write BOM", err)
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, ierrors.NewStorageError("failed to write headers", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer. Safe to call more than once.
func (s *StreamWriter) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
