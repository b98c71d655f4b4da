package db_test

import (
	"context"
	"testing"

	"github.com/vvka-141/tripload/internal/db"
	testhelpers "github.com/vvka-141/tripload/internal/testing"
)

func TestInspector_TableExistsAndRowCount(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	ctx := context.Background()

	pool := testhelpers.GetTestPool(t, connString)
	conn := db.NewPoolAdapter(pool)
	insp := db.NewInspector()

	exists, err := insp.TableExists(ctx, conn, "inspect_missing")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if exists {
		t.Error("table should not exist yet")
	}

	if _, err := pool.Exec(ctx, `CREATE TABLE "inspect_present" ("n" INTEGER)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS "inspect_present"`)
	})
	if _, err := pool.Exec(ctx, `INSERT INTO "inspect_present" VALUES (1), (2), (3)`); err != nil {
		t.Fatalf("inserting rows: %v", err)
	}

	exists, err = insp.TableExists(ctx, conn, "inspect_present")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if !exists {
		t.Error("table should exist")
	}

	count, err := insp.RowCount(ctx, conn, "inspect_present")
	if err != nil {
		t.Fatalf("RowCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("RowCount = %d, want 3", count)
	}
}

func TestInspector_QuotedNames(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	ctx := context.Background()

	pool := testhelpers.GetTestPool(t, connString)
	conn := db.NewPoolAdapter(pool)
	insp := db.NewInspector()

	if _, err := pool.Exec(ctx, `CREATE TABLE "Inspect MixedCase" ("n" INTEGER)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS "Inspect MixedCase"`)
	})

	exists, err := insp.TableExists(ctx, conn, "Inspect MixedCase")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if !exists {
		t.Error("mixed-case table should be found via exact-case lookup")
	}

	exists, err = insp.TableExists(ctx, conn, "inspect mixedcase")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if exists {
		t.Error("lowercase lookup should not match the mixed-case table")
	}
}
