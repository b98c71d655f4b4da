package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/tripload/pkg/tripload"
)

const queryTableExists = "SELECT to_regclass($1) IS NOT NULL"

// Inspector implements table-level inspection using the DBConnection
// abstraction. Stateless and safe for concurrent use; thread safety
// depends on the injected DBConnection.
type Inspector struct{}

// NewInspector creates a new TableInspector instance.
func NewInspector() tripload.TableInspector {
	return &Inspector{}
}

// TableExists checks if a table exists on the connection's search path.
// The name is quoted before resolution, so lookups are exact-case.
func (i *Inspector) TableExists(ctx context.Context, conn tripload.DBConnection, table string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, queryTableExists, pgx.Identifier{table}.Sanitize()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

// RowCount returns the number of rows currently in the table.
func (i *Inspector) RowCount(ctx context.Context, conn tripload.DBConnection, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{table}.Sanitize())
	if err := conn.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %q: %w", table, err)
	}
	return count, nil
}

// Verify Inspector implements the TableInspector interface at compile time
var _ tripload.TableInspector = (*Inspector)(nil)
