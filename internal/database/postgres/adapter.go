package postgres

import (
	"net"
	"net/url"
	"strconv"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

const (
	defaultPort   = 5432
	adminDatabase = "postgres"
)

type Dialect struct {
	// ConnectTimeout is passed as connect_timeout, in whole seconds.
	ConnectTimeout int
	SSLMode        string
}

func New() *Dialect {
	return &Dialect{ConnectTimeout: 5}
}

func (d *Dialect) Name() string          { return "PostgreSQL" }
func (d *Dialect) DriverName() string    { return "pgx" }
func (d *Dialect) DefaultPort() int      { return defaultPort }
func (d *Dialect) AdminDatabase() string { return adminDatabase }

func (d *Dialect) DSN(params common.ConnParams, database string) string {
	port := params.Port
	if port == 0 {
		port = defaultPort
	}
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(params.User, params.Password),
		Host:   net.JoinHostPort(params.Host, strconv.Itoa(port)),
		Path:   "/" + database,
	}
	q := url.Values{}
	if d.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(d.ConnectTimeout))
	}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// CreateDatabaseSQL must run outside a transaction; callers use the
// autocommitting *sql.DB directly.
func (d *Dialect) CreateDatabaseSQL(name string) string {
	return "CREATE DATABASE " + pgx.Identifier{name}.Sanitize()
}

func (d *Dialect) QuoteString(s string) string {
	return pq.QuoteLiteral(s)
}

func (d *Dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	return squirrel.Dollar
}
