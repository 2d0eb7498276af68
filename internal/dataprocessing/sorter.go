package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	ierrors "enrichcli/internal/errors"
)

// SortByDate returns a new sequence ordered ascending by the named date
// column, parsed with the given layout. The sort is stable: rows with equal
// dates keep their original relative order, and sorting an already-sorted
// sequence is a no-op.
//
// Rows whose date does not parse sort before all valid dates, keeping their
// relative order; each offending value is logged once. A missing date column
// is a structural error.
func SortByDate(records []*Record, dateColumn, layout string) ([]*Record, error) {
	if len(records) == 0 {
		return []*Record{}, nil
	}
	if _, ok := records[0].Get(dateColumn); !ok {
		return nil, ierrors.NewStructuralError(
			fmt.Sprintf("date column %q not found", dateColumn), nil)
	}

	keys := make([]time.Time, len(records))
	warned := make(map[string]bool)
	for i, record := range records {
		cell, _ := record.Get(dateColumn)
		raw := cell.String()
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			if !warned[raw] {
				warned[raw] = true
				slog.Warn("unparseable date, sorting row first",
					slog.String("column", dateColumn),
					slog.String("value", raw),
					slog.String("layout", layout))
			}
			// Zero time orders before any valid date.
			parsed = time.Time{}
		}
		keys[i] = parsed
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return keys[order[i]].Before(keys[order[j]])
	})

	sorted := make([]*Record, len(records))
	for i, j := range order {
		sorted[i] = records[j]
	}

	return sorted, nil
}
