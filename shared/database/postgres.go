package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4/pgxpool"
)

var (
	// ErrValueUnderZero when a value given is under zero
	ErrValueUnderZero = errors.New("value must be greater or equal to zero")
	// ErrMaxPoolSizeOverMin when the value given for max pool size is over the min pool size
	ErrMaxPoolSizeOverMin = errors.New("max pool size should be more than min pool size")
	// ErrEmptyConnection when no connection string is given
	ErrEmptyConnection = errors.New("database connection string is empty")
)

// PostgresOptions represents the options related to set up a pg connection
type PostgresOptions struct {
	Connection  string
	MinPoolSize int
	MaxPoolSize int
	// LazyConnect defers dialing until the first query so a bad connection
	// fails the query instead of the constructor
	LazyConnect bool
}

// Postgres is the struct for performing operations on a postgres database
type Postgres struct {
	Conn *pgxpool.Pool
}

// NewPostgresDatabase attempts and returns a postgres connection on success
func NewPostgresDatabase(ctx context.Context, options *PostgresOptions) (*Postgres, error) {
	config, err := ParsePostgresConfig(options)
	if err != nil {
		return nil, err
	}

	conn, err := pgxpool.ConnectConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Postgres{
		Conn: conn,
	}, nil
}

// ParsePostgresConfig validates the options and returns the pool config for them
func ParsePostgresConfig(options *PostgresOptions) (*pgxpool.Config, error) {
	if options.Connection == "" {
		return nil, ErrEmptyConnection
	}

	if options.MinPoolSize < 0 || options.MaxPoolSize < 0 {
		return nil, ErrValueUnderZero
	}

	if options.MinPoolSize > options.MaxPoolSize {
		return nil, ErrMaxPoolSizeOverMin
	}

	config, err := pgxpool.ParseConfig(options.Connection)
	if err != nil {
		return nil, err
	}

	// A zero max pool size keeps the pgx default
	if options.MaxPoolSize > 0 {
		config.MaxConns = int32(options.MaxPoolSize)
	}
	config.MinConns = int32(options.MinPoolSize)
	config.LazyConnect = options.LazyConnect

	return config, nil
}

// Close releases every connection of the pool
func (p *Postgres) Close() {
	p.Conn.Close()
}

