package tripload

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IngestConfig contains all parameters needed for one ingestion run.
type IngestConfig struct {
	// SourceURL is the HTTP(S) location of the dataset to ingest
	SourceURL string

	// TableName is the destination table. The table is dropped and
	// recreated on every run.
	TableName string

	// ConnectionString is the PostgreSQL connection string (URI or ADO.NET format)
	ConnectionString string

	// Normalize enables lookup-table cleanup: column names are
	// lower-cased and trimmed, text values are trimmed.
	Normalize bool

	// Force bypasses interactive approval before dropping an existing table
	Force bool

	// FetchTimeout bounds the HTTP retrieval of the source dataset.
	// Zero means DefaultFetchTimeout. Database operations are never
	// subject to a timeout.
	FetchTimeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the IngestConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *IngestConfig) Validate() error {
	var errs []error

	if c.SourceURL == "" {
		errs = append(errs, fmt.Errorf("SourceURL is required: %w", ErrInvalidConfig))
	}

	if c.TableName == "" {
		errs = append(errs, fmt.Errorf("TableName is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.FetchTimeout < 0 {
		errs = append(errs, fmt.Errorf("fetch timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string
}

// LoadReport summarizes a completed table load.
type LoadReport struct {
	// RunID uniquely identifies this ingestion run in logs.
	RunID uuid.UUID

	// Table is the destination table name.
	Table string

	// RowsCopied is the number of rows the COPY protocol reported.
	RowsCopied int64

	// PreCommitCount is the COUNT(*) observed inside the transaction
	// before commit.
	PreCommitCount int64

	// PostCommitCount is the COUNT(*) observed after commit on the
	// same connection.
	PostCommitCount int64

	// Elapsed is the wall-clock duration of the table load, excluding
	// fetch and decode.
	Elapsed time.Duration
}
