// Package copydata encodes datasets into the text stream consumed by
// the PostgreSQL COPY protocol.
//
// The encoding is CSV with tripload.CopyNullSentinel marking SQL NULL,
// which keeps NULL distinct from the empty string. Rows are encoded
// lazily and handed out in reads capped at tripload.CopyChunkSize
// bytes, so arbitrarily large datasets never double in memory.
package copydata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// timestampLayout renders timestamps without timezone, matching the
// TIMESTAMP columns the schema mapper emits. Fractional seconds are
// written only when present, up to microseconds.
const timestampLayout = "2006-01-02 15:04:05.999999"

// Reader streams a dataset as COPY CSV text. It implements io.Reader;
// each Read returns at most tripload.CopyChunkSize bytes.
//
// Values are checked against their column's declared kind as they are
// encoded. A mismatch surfaces as a Read error, which aborts the COPY
// it is feeding.
type Reader struct {
	ds     *tripload.Dataset
	row    int
	buf    bytes.Buffer
	w      *csv.Writer
	record []string
	err    error
}

// NewReader creates a Reader over the dataset. The dataset must not be
// mutated while the Reader is in use.
func NewReader(ds *tripload.Dataset) *Reader {
	r := &Reader{
		ds:     ds,
		record: make([]string, len(ds.Columns)),
	}
	r.w = csv.NewWriter(&r.buf)
	return r
}

// Read fills p with up to tripload.CopyChunkSize bytes of encoded CSV.
// It returns io.EOF after the last row has been drained, or the first
// encoding error encountered.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for r.buf.Len() == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.fill()
	}

	limit := len(p)
	if limit > tripload.CopyChunkSize {
		limit = tripload.CopyChunkSize
	}
	return r.buf.Read(p[:limit])
}

// fill encodes the next row into the buffer, or records io.EOF / the
// first encoding error.
func (r *Reader) fill() {
	if r.row >= r.ds.Rows() {
		r.err = io.EOF
		return
	}

	for i, col := range r.ds.Columns {
		text, err := formatValue(col.Kind, col.Values[r.row])
		if err != nil {
			r.err = fmt.Errorf("column %q row %d: %w", col.Name, r.row, err)
			return
		}
		r.record[i] = text
	}

	if err := r.w.Write(r.record); err != nil {
		r.err = err
		return
	}
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.err = err
		return
	}
	r.row++
}

// formatValue renders a single cell. nil becomes the NULL sentinel;
// everything else must match the column kind exactly.
func formatValue(kind tripload.Kind, v any) (string, error) {
	if v == nil {
		return tripload.CopyNullSentinel, nil
	}

	switch kind {
	case tripload.KindInt64:
		n, ok := v.(int64)
		if !ok {
			return "", typeMismatch(kind, v)
		}
		return strconv.FormatInt(n, 10), nil

	case tripload.KindInt32:
		n, ok := v.(int32)
		if !ok {
			return "", typeMismatch(kind, v)
		}
		return strconv.FormatInt(int64(n), 10), nil

	case tripload.KindFloat64:
		f, ok := v.(float64)
		if !ok {
			return "", typeMismatch(kind, v)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil

	case tripload.KindBool:
		b, ok := v.(bool)
		if !ok {
			return "", typeMismatch(kind, v)
		}
		return strconv.FormatBool(b), nil

	case tripload.KindTimestamp:
		ts, ok := v.(time.Time)
		if !ok {
			return "", typeMismatch(kind, v)
		}
		return ts.Format(timestampLayout), nil

	case tripload.KindText:
		s, ok := v.(string)
		if !ok {
			return "", typeMismatch(kind, v)
		}
		return s, nil

	default:
		return "", fmt.Errorf("kind %s is not encodable", kind)
	}
}

func typeMismatch(kind tripload.Kind, v any) error {
	return fmt.Errorf("expected %s value, got %T", kind, v)
}
