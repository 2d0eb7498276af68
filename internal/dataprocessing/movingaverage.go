package dataprocessing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MovingAverageColumn is the derived column added for a price field and
// window length, e.g. "Close Moving Average - 5 days".
func MovingAverageColumn(priceColumn string, window int) string {
	return fmt.Sprintf("%s Moving Average - %d days", priceColumn, window)
}

// MovingAverages appends one simple moving-average column per price field
// for the given window length. Row i averages the window rows ending at i
// inclusive; rows with fewer than window rows of history get the marker, as
// does any row whose window contains a marker or non-numeric value.
//
// Averages are computed in exact decimal arithmetic and rounded to two
// places, half away from zero. Each window length rescans its full range per
// row; quadratic, but the datasets are hundreds to low thousands of rows.
func MovingAverages(records []*Record, priceColumns []string, window int) []*Record {
	divisor := decimal.NewFromInt(int64(window))

	for _, col := range priceColumns {
		out := MovingAverageColumn(col, window)
		for i, record := range records {
			record.Set(out, movingAverageCell(records, i, col, window, divisor))
		}
	}
	return records
}

func movingAverageCell(records []*Record, i int, column string, window int, divisor decimal.Decimal) Cell {
	if i < window-1 {
		return NACell()
	}

	sum := decimal.Zero
	for j := i - window + 1; j <= i; j++ {
		cell, ok := records[j].Get(column)
		if !ok {
			return NACell()
		}
		d, ok := cell.Decimal()
		if !ok {
			return NACell()
		}
		sum = sum.Add(d)
	}

	return CurrencyCell(sum.Div(divisor).Round(2))
}
