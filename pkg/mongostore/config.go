package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config holds MongoDB connection settings in env-loadable form.
type Config struct {
	ConnectionURL   string        `env:"MONGOSTORE_URL,required" envDefault:"mongodb://localhost:27017"` // ConnectionURL is the MongoDB connection string.
	Database        string        `env:"MONGOSTORE_DATABASE" envDefault:"accesskit"`                     // Database is the database holding the authorization collections.
	ConnectTimeout  time.Duration `env:"MONGOSTORE_CONNECT_TIMEOUT" envDefault:"10s"`                    // ConnectTimeout bounds each connection attempt.
	MaxPoolSize     uint64        `env:"MONGOSTORE_MAX_POOL_SIZE" envDefault:"100"`                      // MaxPoolSize is the maximum number of pooled connections.
	MinPoolSize     uint64        `env:"MONGOSTORE_MIN_POOL_SIZE" envDefault:"0"`                        // MinPoolSize is the minimum number of pooled connections.
	MaxConnIdleTime time.Duration `env:"MONGOSTORE_MAX_CONN_IDLE_TIME" envDefault:"5m"`                  // MaxConnIdleTime is how long a connection may sit idle.
	RetryAttempts   int           `env:"MONGOSTORE_RETRY_ATTEMPTS" envDefault:"3"`                       // RetryAttempts is the number of connection attempts before giving up.
	RetryInterval   time.Duration `env:"MONGOSTORE_RETRY_INTERVAL" envDefault:"5s"`                      // RetryInterval is the wait between attempts.
}

// Connect establishes a MongoDB client with retries and returns the
// configured database handle.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	for range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetMinPoolSize(cfg.MinPoolSize).
				SetMaxConnIdleTime(cfg.MaxConnIdleTime),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client.Database(cfg.Database), nil
			}
			_ = client.Disconnect(ctx)
		}

		select {
		case <-ctx.Done():
			return nil, ErrFailedToConnect
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToConnect
}
