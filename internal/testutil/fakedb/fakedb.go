// Package fakedb is an in-process database/sql driver that understands just
// enough SQL to exercise the seeding pipeline: CREATE/DROP DATABASE and
// TABLE, INSERT INTO, SAVEPOINT handling and SELECT COUNT(*).
package fakedb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const DriverName = "fakedb"

var (
	ErrUnknownDatabase = errors.New("fakedb: unknown database")
	ErrDatabaseExists  = errors.New("fakedb: database exists")
	ErrNoSuchTable     = errors.New("fakedb: no such table")
	ErrTableExists     = errors.New("fakedb: table already exists")
	ErrUnsupported     = errors.New("fakedb: unsupported statement")
)

var (
	registerOnce sync.Once
	registryMu   sync.Mutex
	registry     = map[string]*Server{}
	nextID       int
)

var (
	createDatabaseRe = regexp.MustCompile(`(?i)^CREATE\s+DATABASE\s+["` + "`" + `]?(\w+)`)
	createTableRe    = regexp.MustCompile(`(?i)^CREATE\s+TABLE\s+["` + "`" + `]?(\w+)`)
	dropTableRe      = regexp.MustCompile(`(?i)^DROP\s+TABLE\s+["` + "`" + `]?(\w+)`)
	insertRe         = regexp.MustCompile(`(?i)^INSERT\s+INTO\s+["` + "`" + `]?(\w+)`)
	countRe          = regexp.MustCompile(`(?i)^SELECT\s+COUNT\(\*\)\s+FROM\s+["` + "`" + `]?(\w+)`)
	savepointRe      = regexp.MustCompile(`(?i)^(SAVEPOINT|ROLLBACK\s+TO\s+SAVEPOINT|RELEASE\s+SAVEPOINT)\s+\w+`)
)

// Statement is one statement the server saw.
type Statement struct {
	Database string
	Query    string
}

// Server is the state behind every connection opened with its DSNs.
type Server struct {
	id string

	mu        sync.Mutex
	databases map[string]map[string]int

	// ConnectErrs are returned, in order, by the next connection attempts
	// before any database lookup happens.
	ConnectErrs []error
	// ExecHook may fail any statement before it is applied.
	ExecHook func(database, query string) error

	Opens      []string
	Statements []Statement
	Commits    int
	Rollbacks  int
}

// NewServer registers a server whose only pre-existing databases are the
// given names plus the anonymous "" database.
func NewServer(t testing.TB, databases ...string) *Server {
	t.Helper()
	registerOnce.Do(func() { sql.Register(DriverName, fakeDriver{}) })

	registryMu.Lock()
	nextID++
	s := &Server{
		id:        "srv" + strconv.Itoa(nextID),
		databases: map[string]map[string]int{"": {}},
	}
	registry[s.id] = s
	registryMu.Unlock()

	for _, name := range databases {
		s.databases[name] = map[string]int{}
	}
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, s.id)
		registryMu.Unlock()
	})
	return s
}

// DSN addresses database on this server.
func (s *Server) DSN(database string) string {
	return s.id + "/" + database
}

func (s *Server) HasDatabase(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.databases[name]
	return ok
}

// AddTable creates table in database with rows pre-existing rows.
func (s *Server) AddTable(database, table string, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.databases[database] == nil {
		s.databases[database] = map[string]int{}
	}
	s.databases[database][table] = rows
}

// Rows returns the row count of table, or -1 when it does not exist.
func (s *Server) Rows(database, table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.databases[database][table]
	if !ok {
		return -1
	}
	return n
}

// Matching returns the recorded statements whose text starts with prefix,
// compared case-insensitively.
func (s *Server) Matching(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, st := range s.Statements {
		if strings.HasPrefix(strings.ToUpper(st.Query), strings.ToUpper(prefix)) {
			out = append(out, st.Query)
		}
	}
	return out
}

func (s *Server) connect(database string) (*conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Opens = append(s.Opens, database)
	if len(s.ConnectErrs) > 0 {
		err := s.ConnectErrs[0]
		s.ConnectErrs = s.ConnectErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if _, ok := s.databases[database]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDatabase, database)
	}
	return &conn{server: s, database: database}, nil
}

func (s *Server) exec(database, query string) error {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.Statements = append(s.Statements, Statement{Database: database, Query: query})
	hook := s.ExecHook
	s.mu.Unlock()

	if hook != nil {
		if err := hook(database, query); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tables := s.databases[database]

	switch {
	case createDatabaseRe.MatchString(query):
		name := createDatabaseRe.FindStringSubmatch(query)[1]
		if _, ok := s.databases[name]; ok {
			return fmt.Errorf("%w: %s", ErrDatabaseExists, name)
		}
		s.databases[name] = map[string]int{}
	case createTableRe.MatchString(query):
		name := createTableRe.FindStringSubmatch(query)[1]
		if _, ok := tables[name]; ok {
			return fmt.Errorf("%w: %s", ErrTableExists, name)
		}
		tables[name] = 0
	case dropTableRe.MatchString(query):
		name := dropTableRe.FindStringSubmatch(query)[1]
		if _, ok := tables[name]; !ok {
			return fmt.Errorf("%w: %s", ErrNoSuchTable, name)
		}
		delete(tables, name)
	case insertRe.MatchString(query):
		name := insertRe.FindStringSubmatch(query)[1]
		if _, ok := tables[name]; !ok {
			return fmt.Errorf("%w: %s", ErrNoSuchTable, name)
		}
		tables[name]++
	case savepointRe.MatchString(query):
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, query)
	}
	return nil
}

func (s *Server) count(database, query string) (int64, error) {
	m := countRe.FindStringSubmatch(strings.TrimSpace(query))
	if m == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, query)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.databases[database][m[1]]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoSuchTable, m[1])
	}
	return int64(n), nil
}

type fakeDriver struct{}

func (fakeDriver) Open(dsn string) (driver.Conn, error) {
	id, database, _ := strings.Cut(dsn, "/")
	registryMu.Lock()
	s := registry[id]
	registryMu.Unlock()
	if s == nil {
		return nil, fmt.Errorf("fakedb: no server %q", id)
	}
	return s.connect(database)
}

type conn struct {
	server   *Server
	database string
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("%w: prepared statements", ErrUnsupported)
}

func (c *conn) Close() error { return nil }

func (c *conn) Begin() (driver.Tx, error) {
	return &tx{server: c.server}, nil
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%w: bind arguments", ErrUnsupported)
	}
	if err := c.server.exec(c.database, query); err != nil {
		return nil, err
	}
	return driver.RowsAffected(1), nil
}

func (c *conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	n, err := c.server.count(c.database, query)
	if err != nil {
		return nil, err
	}
	return &rows{values: []int64{n}}, nil
}

type tx struct {
	server *Server
}

func (t *tx) Commit() error {
	t.server.mu.Lock()
	t.server.Commits++
	t.server.mu.Unlock()
	return nil
}

func (t *tx) Rollback() error {
	t.server.mu.Lock()
	t.server.Rollbacks++
	t.server.mu.Unlock()
	return nil
}

type rows struct {
	values []int64
	pos    int
}

func (r *rows) Columns() []string { return []string{"count"} }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	dest[0] = r.values[r.pos]
	r.pos++
	return nil
}
