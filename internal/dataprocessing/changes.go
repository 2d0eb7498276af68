package dataprocessing

// Column-name suffixes for the derived change columns.
const changeColumnSuffix = " - Daily Percentage Change"

// VolumeChangeColumn is the derived column added by VolumeChange.
func VolumeChangeColumn(volumeColumn string) string {
	return volumeColumn + changeColumnSuffix
}

// PriceChangeColumn is the derived column added by PriceChanges for a field.
func PriceChangeColumn(priceColumn string) string {
	return priceColumn + changeColumnSuffix
}

// VolumeChange appends the day-over-day percentage change of the volume
// column: (current - previous) / previous * 100. The first row, rows whose
// current or previous volume carries the marker or is not numeric, and rows
// whose previous volume is zero all get the marker. Records must already be
// in chronological order.
func VolumeChange(records []*Record, volumeColumn string) []*Record {
	out := VolumeChangeColumn(volumeColumn)
	for i, record := range records {
		record.Set(out, changeCell(records, i, volumeColumn, 0))
	}
	return records
}

// PriceChanges appends one day-over-day percentage change column per price
// field, each computed independently with the same first-difference formula.
//
// The previous-index guard here is i-1 > 0, not >= 0 as in VolumeChange, so
// row 1 stays undefined even though row 0 is a valid predecessor. The guard
// is kept as-is for column-for-column compatibility with existing enriched
// datasets; see DESIGN.md.
func PriceChanges(records []*Record, priceColumns []string) []*Record {
	for _, col := range priceColumns {
		out := PriceChangeColumn(col)
		for i, record := range records {
			record.Set(out, changeCell(records, i, col, 1))
		}
	}
	return records
}

// changeCell computes one percentage-change cell. minPrev is the smallest
// previous index allowed to supply a value: 0 means i-1 >= 0, 1 means i-1 > 0.
func changeCell(records []*Record, i int, column string, minPrev int) Cell {
	if i-1 < minPrev {
		return NACell()
	}

	current, ok := records[i].Get(column)
	if !ok {
		return NACell()
	}
	previous, ok := records[i-1].Get(column)
	if !ok {
		return NACell()
	}

	cur, ok := current.Float()
	if !ok {
		return NACell()
	}
	prev, ok := previous.Float()
	if !ok || prev == 0 {
		return NACell()
	}

	return NumericCell((cur - prev) / prev * 100)
}
