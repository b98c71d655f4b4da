package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tripload/internal/db"
	"github.com/vvka-141/tripload/internal/schema"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// tableLoader streams a dataset into its destination table. Declared
// here so the service depends on the behavior, not the concrete loader.
type tableLoader interface {
	Load(ctx context.Context, sess *tripload.Session, plan schema.TablePlan, ds *tripload.Dataset) (*tripload.LoadReport, error)
}

// IngestionService implements the Ingestor interface.
// Thread-Safety: NOT safe for concurrent Ingest() calls on the same instance.
// Create separate instances for concurrent ingestions.
type IngestionService struct {
	connectorFactory func(*tripload.ConnectionConfig) (tripload.Connector, error)
	fetcher          tripload.Fetcher
	decoder          tripload.Decoder
	mapper           schema.TypeMapper
	inspector        tripload.TableInspector
	approver         tripload.Approver
	loader           tableLoader
	logger           tripload.Logger
}

// NewIngestionService creates a new IngestionService with all dependencies injected.
//
// Panic vs. Error Boundary Rationale:
//   - Panics on nil dependencies: These are programmer errors that should fail loudly
//     at application startup, not during request handling. Fail-fast at construction
//     time prevents cryptic nil pointer dereferences deep in call stacks.
//   - Returns errors for runtime conditions: Configuration validation, connection failures,
//     and network errors are recoverable runtime conditions that should be handled
//     by the caller, not panics.
func NewIngestionService(
	connectorFactory func(*tripload.ConnectionConfig) (tripload.Connector, error),
	fetcher tripload.Fetcher,
	decoder tripload.Decoder,
	mapper schema.TypeMapper,
	inspector tripload.TableInspector,
	approver tripload.Approver,
	loader tableLoader,
	logger tripload.Logger,
) *IngestionService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if fetcher == nil {
		panic("fetcher cannot be nil")
	}
	if decoder == nil {
		panic("decoder cannot be nil")
	}
	if mapper == nil {
		panic("mapper cannot be nil")
	}
	if inspector == nil {
		panic("inspector cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &IngestionService{
		connectorFactory: connectorFactory,
		fetcher:          fetcher,
		decoder:          decoder,
		mapper:           mapper,
		inspector:        inspector,
		approver:         approver,
		loader:           loader,
		logger:           logger,
	}
}

// Ingest executes an ingestion run using the provided configuration.
// This method orchestrates the workflow by calling smaller, focused methods.
func (s *IngestionService) Ingest(ctx context.Context, config tripload.IngestConfig) (*tripload.LoadReport, error) {
	// Validate and parse configuration
	connConfig, err := s.validateAndParseConfig(config)
	if err != nil {
		return nil, err
	}

	// Retrieve and decode the source dataset before touching the database
	ds, err := s.fetchDataset(ctx, config)
	if err != nil {
		return nil, err
	}

	// An empty dataset is a successful run with no database work at all
	if ds.Rows() == 0 {
		s.logger.Info("Dataset is empty. Nothing to load into '%s'.", config.TableName)
		return &tripload.LoadReport{RunID: uuid.New(), Table: config.TableName}, nil
	}

	// Connect, gate the overwrite, and acquire the load connection
	sess, err := s.openSession(ctx, connConfig, config)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	plan := schema.Plan(config.TableName, ds, s.mapper)
	s.logger.Verbose("Destination schema: %s", plan.Definition())

	report, err := s.loader.Load(ctx, sess, plan, ds)
	if err != nil {
		return nil, err // Error already wrapped by the loader
	}

	s.logger.Info("✓ Ingestion completed successfully")
	return report, nil
}

// validateAndParseConfig validates the configuration and parses the connection string.
func (s *IngestionService) validateAndParseConfig(config tripload.IngestConfig) (*tripload.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Starting ingestion into table '%s'", config.TableName)
	s.logger.Verbose("Source URL: %s", config.SourceURL)

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// Set application name if not already set
	if connConfig.AppName == "" {
		connConfig.AppName = "tripload"
	}

	return connConfig, nil
}

// fetchDataset downloads the source payload, decodes it, and applies
// lookup-table normalization when requested.
func (s *IngestionService) fetchDataset(ctx context.Context, config tripload.IngestConfig) (*tripload.Dataset, error) {
	payload, err := s.fetcher.Fetch(ctx, config.SourceURL)
	if err != nil {
		return nil, err // Error already wrapped by the fetcher
	}

	ds, err := s.decoder.Decode(ctx, payload)
	if err != nil {
		return nil, err // Error already wrapped by the decoder
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: decoded dataset is invalid: %w", tripload.ErrDecodeFailed, err)
	}

	if config.Normalize {
		ds.Normalize()
		s.logger.Verbose("Normalized column names and text values")
	}

	s.logger.Verbose("Dataset has %d columns and %d rows", len(ds.Columns), ds.Rows())
	return ds, nil
}

// openSession connects to the database, runs the overwrite gate for an
// existing destination table, and acquires the connection the whole
// load will run on. On success the returned session owns the pool and
// the connection; the caller must Close() it.
func (s *IngestionService) openSession(ctx context.Context, connConfig *tripload.ConnectionConfig, config tripload.IngestConfig) (*tripload.Session, error) {
	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, err // Error already wrapped by the connector
	}

	if err := s.approveOverwrite(ctx, pool, config); err != nil {
		pool.Close()
		return nil, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to acquire connection: %w", tripload.ErrConnectionFailed, err)
	}

	return tripload.NewSession(pool, conn), nil
}

// approveOverwrite checks whether the destination table already exists
// and, if so, asks the approver before it gets dropped.
func (s *IngestionService) approveOverwrite(ctx context.Context, pool *pgxpool.Pool, config tripload.IngestConfig) error {
	dbConn := db.NewPoolAdapter(pool)

	exists, err := s.inspector.TableExists(ctx, dbConn, config.TableName)
	if err != nil {
		return fmt.Errorf("failed to inspect table '%s': %w", config.TableName, err)
	}
	if !exists {
		s.logger.Verbose("Table '%s' does not exist yet", config.TableName)
		return nil
	}

	count, err := s.inspector.RowCount(ctx, dbConn, config.TableName)
	if err != nil {
		return fmt.Errorf("failed to inspect table '%s': %w", config.TableName, err)
	}
	s.logger.Info("Table '%s' already exists with %d rows", config.TableName, count)

	approved, err := s.approver.RequestApproval(ctx, config.TableName)
	if err != nil {
		return fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("%w: overwrite of table '%s' was not approved", tripload.ErrApprovalDenied, config.TableName)
	}

	return nil
}

// Verify IngestionService implements the Ingestor interface at compile time
var _ tripload.Ingestor = (*IngestionService)(nil)
