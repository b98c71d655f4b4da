package tripload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Ingestion completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied table overwrite approval
	ExitLoadFailed      = 13 // Table load failed and was rolled back
	ExitFetchFailed     = 14 // Source dataset could not be fetched or decoded
)

const (
	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultFetchTimeout bounds the HTTP retrieval of a source dataset.
	// Database operations are deliberately not subject to any timeout.
	DefaultFetchTimeout = 120 * time.Second

	// CopyChunkSize is the maximum number of bytes handed to the COPY
	// protocol per read of the encoded dataset stream.
	CopyChunkSize = 8192

	// CopyNullSentinel marks SQL NULL in the encoded COPY stream,
	// distinguishing missing values from empty strings.
	CopyNullSentinel = `\N`
)

// Built-in dataset sources. Both are published by the NYC Taxi &
// Limousine Commission; the trip records as monthly Parquet files on
// CloudFront, the zone lookup as a small CSV.
const (
	DefaultTripsURL = "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2025-11.parquet"
	DefaultZonesURL = "https://github.com/DataTalksClub/nyc-tlc-data/releases/download/misc/taxi_zone_lookup.csv"

	DefaultTripsTable = "yellow_taxi_trips"
	DefaultZonesTable = "taxi_zones"

	// DefaultDatabase is the destination database when neither flags,
	// environment, nor project config provide one.
	DefaultDatabase = "ny_taxi"
)

// Connection defaults matching the docker-compose environment the
// datasets are normally loaded into.
const (
	DefaultHost     = "pgdatabase"
	DefaultPort     = 5432
	DefaultUsername = "root"
	DefaultPassword = "root"
)
