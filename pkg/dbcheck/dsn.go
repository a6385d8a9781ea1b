package dbcheck

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Endpoint is the part of a connection string that is safe to print.
type Endpoint struct {
	Host     string
	Port     string
	Database string
	User     string
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, e.Port)
}

func (e Endpoint) String() string {
	if e.Database == "" {
		return e.Address()
	}
	return e.Address() + "/" + e.Database
}

// ParseDSN accepts both URL ("postgres://...") and key=value connection
// strings. It resolves them with pq.NewConfig, so PG* environment variables
// and defaults apply exactly as they will when the driver connects.
func ParseDSN(dsn string) (Endpoint, error) {
	cfg, err := pq.NewConfig(strings.TrimSpace(dsn))
	if err != nil {
		return Endpoint{}, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	return Endpoint{
		Host:     cfg.Host,
		Port:     strconv.Itoa(int(cfg.Port)),
		Database: cfg.Database,
		User:     cfg.User,
	}, nil
}
