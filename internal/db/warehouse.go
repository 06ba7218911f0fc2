package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const (
	DriverClickHouse = "clickhouse"
	DriverMySQL      = "mysql"
)

type WarehouseOpts struct {
	Driver          string // clickhouse|mysql
	DSN             string // e.g. clickhouse://default:@localhost:9000/creditdash?dial_timeout=5s
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration // default 3s
}

// OpenWarehouse opens and pings the records store.
func OpenWarehouse(ctx context.Context, opts WarehouseOpts) (*sqlx.DB, error) {
	switch opts.Driver {
	case DriverClickHouse, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported warehouse driver %q", opts.Driver)
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("empty %s DSN", opts.Driver)
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 3 * time.Second
	}

	db, err := sqlx.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	pctx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}

	return db, nil
}
