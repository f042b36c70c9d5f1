package kv

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Config selects and configures a driver.
type Config struct {
	Driver    string   `json:"driver" yaml:"driver"`
	DSN       string   `json:"dsn" yaml:"dsn"`
	Namespace string   `json:"namespace" yaml:"namespace"`
	S3        S3Config `json:"s3" yaml:"s3"`
}

// Open builds the configured driver, wraps it in the namespace (if any) and
// returns it with a close function releasing the underlying handle.
func Open(ctx context.Context, c Config) (Storage, func() error, error) {
	noop := func() error { return nil }

	if err := ValidateNamespace(c.Namespace); err != nil {
		return nil, nil, err
	}

	var (
		s       Storage
		closeFn = noop
	)

	switch c.Driver {
	case "", DriverMemory:
		s = NewMemory()

	case DriverSQLite:
		dsn := c.DSN
		if dsn == "" {
			dsn = "gophtasks.db"
		}
		st, db, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		s, closeFn = st, db.Close

	case DriverPostgres:
		st, db, err := OpenPostgres(ctx, c.DSN)
		if err != nil {
			return nil, nil, err
		}
		s, closeFn = st, db.Close

	case DriverS3:
		st, err := OpenS3(ctx, c.S3)
		if err != nil {
			return nil, nil, err
		}
		s = st

	default:
		return nil, nil, fmt.Errorf("%w: %q", common.ErrorUnknownDriver, c.Driver)
	}

	return WithNamespace(s, c.Namespace), closeFn, nil
}
