// Package loader executes the transactional table load: recreate the
// destination table, stream the dataset through COPY, verify the row
// count before and after commit.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/tripload/internal/copydata"
	"github.com/vvka-141/tripload/internal/schema"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// TableLoader implements the load workflow against a session's
// connection.
// Thread-Safety: NOT safe for concurrent Load() calls on the same
// instance.
type TableLoader struct {
	logger tripload.Logger
}

// NewTableLoader creates a TableLoader. Panics if logger is nil.
func NewTableLoader(logger tripload.Logger) *TableLoader {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &TableLoader{logger: logger}
}

// Load replaces the destination table with the dataset's rows.
//
// An empty dataset succeeds without touching the database. Otherwise
// DROP, CREATE, COPY and the pre-commit count run in one transaction;
// any failure rolls the transaction back and the table keeps its
// previous state. The post-commit count runs on the same connection
// after the commit, so a mismatch there reports an error without
// undoing the load.
func (l *TableLoader) Load(ctx context.Context, sess *tripload.Session, plan schema.TablePlan, ds *tripload.Dataset) (*tripload.LoadReport, error) {
	report := &tripload.LoadReport{RunID: uuid.New(), Table: plan.Table}

	rows := int64(ds.Rows())
	if rows == 0 {
		l.logger.Info("Dataset is empty. Nothing to load into '%s'.", plan.Table)
		return report, nil
	}

	start := time.Now()
	if err := l.run(ctx, sess, plan, ds, rows, report); err != nil {
		return nil, fmt.Errorf("%w: %w", tripload.ErrLoadFailed, err)
	}
	report.Elapsed = time.Since(start)

	l.logger.Info("✓ Loaded %d rows into '%s' in %s",
		report.RowsCopied, plan.Table, report.Elapsed.Round(time.Millisecond))
	return report, nil
}

func (l *TableLoader) run(ctx context.Context, sess *tripload.Session, plan schema.TablePlan, ds *tripload.Dataset, rows int64, report *tripload.LoadReport) error {
	conn := sess.Conn()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			l.logger.Error("Rollback of '%s' load failed: %v", plan.Table, rbErr)
		}
	}()

	l.logger.Verbose("Recreating table '%s'", plan.Table)
	if _, err := tx.Exec(ctx, plan.DropSQL()); err != nil {
		return fmt.Errorf("failed to drop table '%s': %w", plan.Table, err)
	}
	if _, err := tx.Exec(ctx, plan.CreateSQL()); err != nil {
		return fmt.Errorf("failed to create table '%s': %w", plan.Table, err)
	}

	l.logger.Verbose("Copying %d rows into '%s'", rows, plan.Table)
	tag, err := tx.Conn().PgConn().CopyFrom(ctx, copydata.NewReader(ds), plan.CopySQL())
	if err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	report.RowsCopied = tag.RowsAffected()
	if report.RowsCopied != rows {
		return fmt.Errorf("%w: copy reported %d rows, dataset has %d",
			tripload.ErrCountMismatch, report.RowsCopied, rows)
	}

	if err := tx.QueryRow(ctx, plan.CountSQL()).Scan(&report.PreCommitCount); err != nil {
		return fmt.Errorf("failed to count rows before commit: %w", err)
	}
	if report.PreCommitCount != rows {
		return fmt.Errorf("%w: table holds %d rows before commit, dataset has %d",
			tripload.ErrCountMismatch, report.PreCommitCount, rows)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	committed = true

	if err := conn.QueryRow(ctx, plan.CountSQL()).Scan(&report.PostCommitCount); err != nil {
		return fmt.Errorf("failed to count rows after commit: %w", err)
	}
	if report.PostCommitCount != rows {
		return fmt.Errorf("%w: table holds %d rows after commit, dataset has %d",
			tripload.ErrCountMismatch, report.PostCommitCount, rows)
	}

	return nil
}
