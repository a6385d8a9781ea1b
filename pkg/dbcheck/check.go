// Package dbcheck checks the Postgres database behind the RAG stack: a TCP
// reachability check followed by a real login and a few catalog queries.
package dbcheck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
	"github.com/vertti/ragcheck/pkg/tcpcheck"
)

// DefaultTimeout bounds the whole database check when RAGCHECK_TIMEOUT is unset.
const DefaultTimeout = 10 * time.Second

// Opener opens a *sql.DB for a DSN.
type Opener func(dsn string) (*sql.DB, error)

// OpenPostgres opens a lib/pq connection pool. No connection is made until
// the first query.
func OpenPostgres(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}

// PortCheck dials the host and port from DATABASE_URL.
type PortCheck struct {
	Config *config.Config
	Dialer tcpcheck.Dialer
}

// Run executes the reachability check.
func (c *PortCheck) Run() check.Result {
	ep, err := endpoint(c.Config)
	if err != nil {
		return check.Attempt("tcp: postgres", func() (check.Metadata, error) { return nil, err })
	}
	tc := &tcpcheck.Check{
		Address: ep.Address(),
		Timeout: c.Config.Duration("RAGCHECK_TIMEOUT", tcpcheck.DefaultTimeout),
		Dialer:  c.Dialer,
	}
	return tc.Run()
}

// Check logs in and runs catalog queries.
type Check struct {
	Config *config.Config
	Open   Opener // injected for testing
}

// Run executes the database check.
func (c *Check) Run() check.Result {
	name := "postgres"
	ep, epErr := endpoint(c.Config)
	if epErr == nil {
		name = "postgres: " + ep.String()
	}

	return check.Attempt(name, func() (check.Metadata, error) {
		if epErr != nil {
			return nil, epErr
		}
		dsn, _ := c.Config.Get("DATABASE_URL")

		db, err := c.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		defer func() { _ = db.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), c.Config.Duration("RAGCHECK_TIMEOUT", DefaultTimeout))
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return nil, classify(ep, err)
		}

		var version, database, user string
		err = db.QueryRowContext(ctx, "SELECT version(), current_database(), current_user").Scan(&version, &database, &user)
		if err != nil {
			return nil, classify(ep, err)
		}

		md := check.Metadata{
			"server_version": shortVersion(version),
			"database":       database,
			"user":           user,
		}

		var vector string
		err = db.QueryRowContext(ctx, "SELECT extversion FROM pg_extension WHERE extname = 'vector'").Scan(&vector)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			md["pgvector"] = "not installed"
		case err != nil:
			return md, classify(ep, err)
		default:
			md["pgvector"] = vector
		}
		return md, nil
	})
}

func endpoint(cfg *config.Config) (Endpoint, error) {
	values, err := cfg.Require("DATABASE_URL")
	if err != nil {
		return Endpoint{}, err
	}
	return ParseDSN(values[0])
}

// classify turns "database does not exist" and rejected logins into
// failures; every other driver error stays an unexpected fault.
func classify(ep Endpoint, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "3D000":
		return check.Absent("database "+ep.Database, pqErr.Message)
	case "28P01", "28000":
		return check.Absent("login for role "+ep.User, pqErr.Message)
	default:
		return err
	}
}

// shortVersion trims "PostgreSQL 16.2 (Debian 16.2-1) on x86_64..." to "PostgreSQL 16.2".
func shortVersion(v string) string {
	fields := strings.Fields(v)
	if len(fields) >= 2 {
		return fields[0] + " " + fields[1]
	}
	return v
}
