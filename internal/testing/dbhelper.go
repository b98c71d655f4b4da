package testing

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tripload/internal/db"
	"github.com/vvka-141/tripload/internal/fetch"
	"github.com/vvka-141/tripload/internal/loader"
	"github.com/vvka-141/tripload/internal/logging"
	"github.com/vvka-141/tripload/internal/schema"
	"github.com/vvka-141/tripload/internal/services"
	"github.com/vvka-141/tripload/internal/testinfra"
	"github.com/vvka-141/tripload/pkg/tripload"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartSimplePostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: TRIPLOAD_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("TRIPLOAD_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("TRIPLOAD_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// NewTestIngestionService creates an Ingestor instance configured for testing.
// Uses the standard connector factory and a force-approving test approver;
// the decoder and type mapper vary per dataset and are supplied by the caller.
func NewTestIngestionService(t *testing.T, decoder tripload.Decoder, mapper schema.TypeMapper) tripload.Ingestor {
	t.Helper()

	logger := logging.NewNullLogger()

	return services.NewIngestionService(
		db.NewConnector,
		fetch.NewFetcher(30*time.Second, logger),
		decoder,
		mapper,
		db.NewInspector(),
		&ForceApprover{},
		loader.NewTableLoader(logger),
		logger,
	)
}

// ForceApprover is a test approver that always approves overwrite requests.
type ForceApprover struct{}

// RequestApproval always returns true (auto-approves).
func (a *ForceApprover) RequestApproval(ctx context.Context, tableName string) (bool, error) {
	return true, nil
}

// GetTestPool creates a connection pool to the test database.
// The pool is automatically closed when the test completes.
func GetTestPool(t *testing.T, connString string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

// NewTestSession creates a Session backed by its own pool and acquired
// connection, mirroring how a production load run owns its resources.
// The session is automatically closed when the test completes.
func NewTestSession(t *testing.T, connString string) *tripload.Session {
	t.Helper()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		t.Fatalf("Failed to acquire connection: %v", err)
	}

	sess := tripload.NewSession(pool, conn)
	t.Cleanup(func() {
		_ = sess.Close()
	})

	return sess
}

// SampleDataset returns a small mixed-kind dataset: one row with an
// integer id, a float amount, a timestamp, and a NULL text note.
func SampleDataset() *tripload.Dataset {
	return &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "id", Kind: tripload.KindInt64, Values: []any{int64(1)}},
			{Name: "amount", Kind: tripload.KindFloat64, Values: []any{12.5}},
			{Name: "ts", Kind: tripload.KindTimestamp, Values: []any{time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)}},
			{Name: "note", Kind: tripload.KindText, Values: []any{nil}},
		},
	}
}
