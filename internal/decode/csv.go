package decode

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// CSVDecoder materializes a CSV payload into a dataset. The first
// record is the header; column kinds are inferred from the data.
type CSVDecoder struct {
	logger tripload.Logger
}

// NewCSVDecoder creates a CSVDecoder. Panics if logger is nil.
func NewCSVDecoder(logger tripload.Logger) *CSVDecoder {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &CSVDecoder{logger: logger}
}

// Decode parses the payload. A column where every cell is an integer
// becomes int64; a column of numbers, or an integer column with gaps,
// becomes float64; everything else stays text with the raw cell
// preserved. Cells that are empty after trimming become NULL.
func (d *CSVDecoder) Decode(ctx context.Context, data []byte) (*tripload.Dataset, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing CSV payload: %w", tripload.ErrDecodeFailed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV payload has no header row", tripload.ErrDecodeFailed)
	}

	header := records[0]
	rows := records[1:]

	ds := &tripload.Dataset{Columns: make([]tripload.Column, len(header))}
	for j, name := range header {
		kind := inferKind(rows, j)
		values := make([]any, len(rows))
		for i, rec := range rows {
			values[i] = parseCell(rec[j], kind)
		}
		ds.Columns[j] = tripload.Column{Name: name, Kind: kind, Values: values}
	}

	d.logger.Verbose("Decoded CSV payload: %d columns, %d rows", len(header), len(rows))
	return ds, nil
}

func inferKind(rows [][]string, j int) tripload.Kind {
	sawValue := false
	sawEmpty := false
	allInt := true
	allFloat := true

	for _, rec := range rows {
		cell := strings.TrimSpace(rec[j])
		if cell == "" {
			sawEmpty = true
			continue
		}
		sawValue = true
		if allInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				allFloat = false
			}
		}
		if !allInt && !allFloat {
			return tripload.KindText
		}
	}

	// A gap in an otherwise integral column widens it to float64, the
	// same shape a dataframe reader gives a nullable integer column.
	switch {
	case !sawValue:
		return tripload.KindText
	case allInt && !sawEmpty:
		return tripload.KindInt64
	case allFloat:
		return tripload.KindFloat64
	default:
		return tripload.KindText
	}
}

func parseCell(raw string, kind tripload.Kind) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	// Inference already proved numeric cells parse.
	switch kind {
	case tripload.KindInt64:
		n, _ := strconv.ParseInt(trimmed, 10, 64)
		return n
	case tripload.KindFloat64:
		f, _ := strconv.ParseFloat(trimmed, 64)
		return f
	default:
		return raw
	}
}
