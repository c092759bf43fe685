package pgstore

import "errors"

// Package-specific errors.
var (
	// ErrFailedToParseDBConfig is returned when the connection string is malformed.
	ErrFailedToParseDBConfig = errors.New("pgstore.failed_to_parse_db_config")

	// ErrFailedToOpenDBConnection is returned when all connection attempts fail.
	ErrFailedToOpenDBConnection = errors.New("pgstore.failed_to_open_db_connection")

	// ErrQueryFailed wraps any query-level failure.
	ErrQueryFailed = errors.New("pgstore.query_failed")

	// ErrFailedToApplyMigrations is returned when schema migrations cannot be applied.
	ErrFailedToApplyMigrations = errors.New("pgstore.failed_to_apply_migrations")

	// ErrMigrationPathNotProvided is returned when the migrations path is empty.
	ErrMigrationPathNotProvided = errors.New("pgstore.migration_path_not_provided")

	// ErrMigrationsDirNotFound is returned when the migrations directory does not exist.
	ErrMigrationsDirNotFound = errors.New("pgstore.migrations_dir_not_found")
)
