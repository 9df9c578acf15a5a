package mysql

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
)

const defaultPort = 3306

type Dialect struct {
	// ConnectTimeout bounds a single dial; the retry loop handles the rest.
	ConnectTimeout time.Duration
}

func New() *Dialect {
	return &Dialect{ConnectTimeout: 5 * time.Second}
}

func (d *Dialect) Name() string       { return "MySQL" }
func (d *Dialect) DriverName() string { return "mysql" }
func (d *Dialect) DefaultPort() int   { return defaultPort }

// AdminDatabase is empty: MySQL accepts connections without a default schema.
func (d *Dialect) AdminDatabase() string { return "" }

func (d *Dialect) DSN(params common.ConnParams, database string) string {
	cfg := mysql.NewConfig()
	cfg.User = params.User
	cfg.Passwd = params.Password
	cfg.Net = "tcp"
	port := params.Port
	if port == 0 {
		port = defaultPort
	}
	cfg.Addr = net.JoinHostPort(params.Host, strconv.Itoa(port))
	cfg.DBName = database
	cfg.Timeout = d.ConnectTimeout
	return cfg.FormatDSN()
}

func (d *Dialect) CreateDatabaseSQL(name string) string {
	return "CREATE DATABASE " + quoteIdent(name) + " DEFAULT CHARACTER SET 'utf8'"
}

// QuoteString escapes backslashes and single quotes the way MySQL reads
// them in its default sql_mode.
func (d *Dialect) QuoteString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return "'" + escaped + "'"
}

func (d *Dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
