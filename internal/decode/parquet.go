// Package decode turns fetched payloads into datasets.
//
// Two formats are supported: Apache Parquet (trip files) and CSV with
// a header row (lookup tables). Decoders implement tripload.Decoder
// and wrap every failure in tripload.ErrDecodeFailed.
package decode

import (
	"bytes"
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// ParquetDecoder materializes a parquet payload into a dataset.
type ParquetDecoder struct {
	logger tripload.Logger
}

// NewParquetDecoder creates a ParquetDecoder. Panics if logger is nil.
func NewParquetDecoder(logger tripload.Logger) *ParquetDecoder {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ParquetDecoder{logger: logger}
}

// Decode reads the full parquet payload into memory, preserving column
// order and nulls. Narrow integer and float columns widen to the
// closest dataset kind.
func (d *ParquetDecoder) Decode(ctx context.Context, data []byte) (*tripload.Dataset, error) {
	pf, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: opening parquet payload: %w", tripload.ErrDecodeFailed, err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("%w: reading parquet schema: %w", tripload.ErrDecodeFailed, err)
	}

	table, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: materializing parquet payload: %w", tripload.ErrDecodeFailed, err)
	}
	defer table.Release()

	ds := &tripload.Dataset{Columns: make([]tripload.Column, 0, table.NumCols())}
	for i := 0; i < int(table.NumCols()); i++ {
		field := table.Schema().Field(i)
		values := make([]any, 0, table.NumRows())
		for _, chunk := range table.Column(i).Data().Chunks() {
			appendChunk(&values, chunk)
		}
		ds.Columns = append(ds.Columns, tripload.Column{
			Name:   field.Name,
			Kind:   kindForArrowType(field.Type),
			Values: values,
		})
	}

	d.logger.Verbose("Decoded parquet payload: %d columns, %d rows", table.NumCols(), table.NumRows())
	return ds, nil
}

// kindForArrowType maps an arrow type to a dataset kind. Types without
// a dedicated kind fall back to text; chunkValue renders those through
// the array's string form, so the two switches must stay aligned.
func kindForArrowType(dt arrow.DataType) tripload.Kind {
	switch dt.ID() {
	case arrow.INT64:
		return tripload.KindInt64
	case arrow.UINT32, arrow.UINT64:
		return tripload.KindInt64
	case arrow.INT32, arrow.INT16, arrow.INT8, arrow.UINT16, arrow.UINT8:
		return tripload.KindInt32
	case arrow.FLOAT64, arrow.FLOAT32:
		return tripload.KindFloat64
	case arrow.BOOL:
		return tripload.KindBool
	case arrow.TIMESTAMP:
		return tripload.KindTimestamp
	case arrow.STRING, arrow.LARGE_STRING:
		return tripload.KindText
	default:
		return tripload.KindText
	}
}

func appendChunk(values *[]any, arr arrow.Array) {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			*values = append(*values, nil)
			continue
		}
		*values = append(*values, chunkValue(arr, i))
	}
}

func chunkValue(arr arrow.Array, i int) any {
	switch a := arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Uint64:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Int32:
		return a.Value(i)
	case *array.Int16:
		return int32(a.Value(i))
	case *array.Int8:
		return int32(a.Value(i))
	case *array.Uint16:
		return int32(a.Value(i))
	case *array.Uint8:
		return int32(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Boolean:
		return a.Value(i)
	case *array.Timestamp:
		tsType := a.DataType().(*arrow.TimestampType)
		return a.Value(i).ToTime(tsType.Unit)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	default:
		return arr.ValueStr(i)
	}
}
