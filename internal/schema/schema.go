// Package schema derives destination table shapes from datasets.
//
// Derivation is pure: a dataset and a type mapper fully determine the
// table plan, and the plan renders its own DDL and COPY statements.
// Column order always follows dataset order.
package schema

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// TypeMapper maps a dataset column kind to a destination SQL type.
// Mappers must be total: every kind, including invalid ones, maps to
// some type rather than failing.
type TypeMapper func(kind tripload.Kind) string

// TripTypes is the mapper for trip-record datasets.
func TripTypes(kind tripload.Kind) string {
	switch kind {
	case tripload.KindTimestamp:
		return "TIMESTAMP"
	case tripload.KindInt64:
		return "BIGINT"
	case tripload.KindInt32:
		return "INTEGER"
	case tripload.KindFloat64:
		return "NUMERIC(12,2)"
	case tripload.KindBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// ZoneTypes is the mapper for lookup-table datasets such as the taxi
// zone list. Integer codes fit INTEGER; everything else that is not
// numeric becomes TEXT.
func ZoneTypes(kind tripload.Kind) string {
	switch kind {
	case tripload.KindInt64:
		return "INTEGER"
	case tripload.KindFloat64:
		return "NUMERIC(12,2)"
	default:
		return "TEXT"
	}
}

// ColumnDef is one column of the destination table.
type ColumnDef struct {
	Name    string
	SQLType string
}

// TablePlan is the fully derived shape of one destination table,
// together with the statements the loader needs. A plan is a value;
// deriving it performs no database work.
type TablePlan struct {
	Table   string
	Columns []ColumnDef
}

// Plan derives the destination table plan for a dataset.
// Column order and names are taken from the dataset verbatim.
func Plan(table string, ds *tripload.Dataset, mapper TypeMapper) TablePlan {
	cols := make([]ColumnDef, len(ds.Columns))
	for i, c := range ds.Columns {
		cols[i] = ColumnDef{Name: c.Name, SQLType: mapper(c.Kind)}
	}
	return TablePlan{Table: table, Columns: cols}
}

// Definition returns the quoted column definition list, e.g.
// `"id" BIGINT, "amount" NUMERIC(12,2)`.
func (p TablePlan) Definition() string {
	defs := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		defs[i] = fmt.Sprintf("%s %s", pgx.Identifier{c.Name}.Sanitize(), c.SQLType)
	}
	return strings.Join(defs, ", ")
}

// DropSQL returns the statement that removes the destination table if present.
func (p TablePlan) DropSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{p.Table}.Sanitize())
}

// CreateSQL returns the statement that creates the destination table.
func (p TablePlan) CreateSQL() string {
	return fmt.Sprintf("CREATE TABLE %s (%s)", pgx.Identifier{p.Table}.Sanitize(), p.Definition())
}

// CopySQL returns the COPY command the encoded dataset stream is fed to.
// CSV format with an explicit NULL marker so that empty strings and
// NULLs stay distinct.
func (p TablePlan) CopySQL() string {
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = pgx.Identifier{c.Name}.Sanitize()
	}
	return fmt.Sprintf("COPY %s (%s) FROM STDIN WITH (FORMAT CSV, NULL '%s')",
		pgx.Identifier{p.Table}.Sanitize(), strings.Join(names, ", "), tripload.CopyNullSentinel)
}

// CountSQL returns the verification query for the destination table.
func (p TablePlan) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{p.Table}.Sanitize())
}
