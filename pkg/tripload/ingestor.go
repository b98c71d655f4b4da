package tripload

import "context"

// Ingestor is the main interface for executing dataset ingestions.
// Implementations handle the full workflow: fetching the source,
// decoding it into a dataset, deriving the destination schema, and
// bulk-loading the rows transactionally.
type Ingestor interface {
	// Ingest executes an ingestion run using the provided configuration.
	// It returns a report of the completed load, or an error if the run
	// fails at any stage. An empty source dataset is a successful run
	// that performs no database operations.
	Ingest(ctx context.Context, config IngestConfig) (*LoadReport, error)
}

// Fetcher retrieves a source dataset payload over the network.
type Fetcher interface {
	// Fetch downloads the resource at url and returns its raw bytes.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Decoder turns a raw payload into a materialized dataset.
// Each implementation handles one serialization format.
type Decoder interface {
	// Decode parses data and returns the dataset it contains.
	Decode(ctx context.Context, data []byte) (*Dataset, error)
}

// TableInspector answers questions about existing destination tables.
// Used to gate the destructive drop/recreate workflow.
type TableInspector interface {
	// TableExists reports whether a table with the given name exists
	// in the connected database's search path.
	TableExists(ctx context.Context, conn DBConnection, table string) (bool, error)

	// RowCount returns the current COUNT(*) of the table.
	RowCount(ctx context.Context, conn DBConnection, table string) (int64, error)
}
