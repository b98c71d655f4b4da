package tripload

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the value type of a dataset column.
// The set is closed: decoders must map every source type onto one of
// these kinds, falling back to KindText for anything unrecognized.
type Kind int

const (
	// KindText is the zero value so that unknown or unmapped source
	// types default to text.
	KindText Kind = iota
	KindInt64
	KindInt32
	KindFloat64
	KindBool
	KindTimestamp
)

// String returns a human-readable string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt64:
		return "int64"
	case KindInt32:
		return "int32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// IsValid returns true if the Kind is a valid, defined value.
func (k Kind) IsValid() bool {
	return k >= KindText && k <= KindTimestamp
}

// Column is a single named column of a dataset.
//
// Values holds one entry per row. A nil entry represents SQL NULL.
// Non-nil entries must match the column's Kind:
//
//	KindText      string
//	KindInt64     int64
//	KindInt32     int32
//	KindFloat64   float64
//	KindBool      bool
//	KindTimestamp time.Time
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// Dataset is a fully materialized tabular dataset: an ordered list of
// named, typed columns of equal length. Column order is significant and
// is preserved through schema derivation and bulk loading.
type Dataset struct {
	Columns []Column
}

// Rows returns the number of rows in the dataset.
// For a valid dataset all columns have this length.
func (d *Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// ColumnNames returns the column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks the structural invariants of the dataset.
// It returns a multi-error if multiple violations occur.
func (d *Dataset) Validate() error {
	var errs []error

	rows := d.Rows()
	seen := make(map[string]bool, len(d.Columns))
	for i, c := range d.Columns {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("column %d has an empty name", i))
		}
		if !c.Kind.IsValid() {
			errs = append(errs, fmt.Errorf("column %q has invalid kind %d", c.Name, c.Kind))
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate column name %q", c.Name))
		}
		seen[c.Name] = true
		if len(c.Values) != rows {
			errs = append(errs, fmt.Errorf("column %q has %d values, expected %d", c.Name, len(c.Values), rows))
		}
	}

	return errors.Join(errs...)
}

// Normalize cleans up a lookup-style dataset in place:
// column names are lower-cased and trimmed, and text values are
// trimmed of surrounding whitespace. Nulls and non-text values are
// left untouched.
func (d *Dataset) Normalize() {
	for i := range d.Columns {
		c := &d.Columns[i]
		c.Name = strings.ToLower(strings.TrimSpace(c.Name))
		if c.Kind != KindText {
			continue
		}
		for j, v := range c.Values {
			if s, ok := v.(string); ok {
				c.Values[j] = strings.TrimSpace(s)
			}
		}
	}
}
