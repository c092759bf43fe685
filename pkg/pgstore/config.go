package pgstore

import "time"

// Config holds PostgreSQL connection settings in env-loadable form.
type Config struct {
	ConnectionString  string        `env:"PGSTORE_CONN_URL,required"`                   // ConnectionString is the connection string to the database.
	MaxOpenConns      int32         `env:"PGSTORE_MAX_OPEN_CONNS" envDefault:"10"`      // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns      int32         `env:"PGSTORE_MAX_IDLE_CONNS" envDefault:"5"`       // MaxIdleConns is applied as the pool's minimum connection count (pgxpool MinConns).
	HealthCheckPeriod time.Duration `env:"PGSTORE_HEALTHCHECK_PERIOD" envDefault:"1m"`  // HealthCheckPeriod is the period between pool health checks.
	MaxConnIdleTime   time.Duration `env:"PGSTORE_MAX_CONN_IDLE_TIME" envDefault:"10m"` // MaxConnIdleTime is how long a connection may sit idle before reuse.
	MaxConnLifetime   time.Duration `env:"PGSTORE_MAX_CONN_LIFETIME" envDefault:"30m"`  // MaxConnLifetime is how long a connection may be reused.

	RetryAttempts int           `env:"PGSTORE_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of connection attempts before giving up.
	RetryInterval time.Duration `env:"PGSTORE_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the base wait between attempts.

	MigrationsPath  string `env:"PGSTORE_MIGRATIONS_PATH" envDefault:"pkg/pgstore/migrations"` // MigrationsPath is the path to the migrations directory.
	MigrationsTable string `env:"PGSTORE_MIGRATIONS_TABLE" envDefault:"schema_migrations"`     // MigrationsTable stores the applied migration versions.
}
