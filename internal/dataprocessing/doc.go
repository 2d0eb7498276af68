// Package dataprocessing implements the enrichment pipeline for daily
// price/volume tables. It takes a parsed table (header plus raw rows) and
// produces a chronologically-sorted sequence of records augmented with
// derived columns: day-over-day percentage changes for the volume and price
// fields, and simple moving averages over a configurable set of window
// lengths.
//
// # Architecture
//
// The package is organized around small, composable stages:
//
// 1. Record model: zips a header and raw rows into ordered name→cell records
// 2. Sorter: stable ascending sort on the parsed date column
// 3. Change transforms: day-over-day percentage deltas for volume and prices
// 4. Moving-average transform: trailing-window means, one set per window length
// 5. Pipeline: runs the stages in a fixed order with explicit options
//
// # Usage
//
//	records, err := dataprocessing.RecordsFromRows(header, rows)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := dataprocessing.NewPipeline(dataprocessing.Options{
//	    DateColumn:   "Date",
//	    DateLayout:   "2006-01-02",
//	    VolumeColumn: "Volume",
//	    PriceColumns: []string{"Open", "High", "Low", "Close"},
//	    Windows:      []int{5, 50, 100, 200},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	enriched, err := p.Run(ctx, records)
//
// # Sentinel semantics
//
// A cell whose value is undefined for a row (not enough history for a moving
// average, no usable previous row for a change) carries the not-applicable
// marker, serialized as "-". The marker propagates: any computation that
// would consume a marker operand yields the marker, never an error. Every
// derived column is therefore total — each row holds either a numeric string
// or exactly "-".
//
// # Purity
//
// The pipeline is deterministic: the same input records and the same options
// produce byte-identical output. Each stage consumes the full sequence and
// returns a fully materialized result; nothing is streamed.
package dataprocessing
