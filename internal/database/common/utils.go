package common

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrorClass is how a failed connection attempt should be handled.
type ErrorClass int

const (
	Transient ErrorClass = iota
	MissingDatabase
	Fatal
)

func (c ErrorClass) String() string {
	switch c {
	case MissingDatabase:
		return "missing-database"
	case Fatal:
		return "fatal"
	default:
		return "transient"
	}
}

// SchemaErrorClass tells which DDL failures are expected.
type SchemaErrorClass int

const (
	SchemaOther SchemaErrorClass = iota
	TableMissing
	TableExists
)

// ConnParams are the server coordinates shared by every connection a run makes.
type ConnParams struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Table pairs a table name with the statement that creates it.
type Table struct {
	Name      string
	CreateSQL string
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ClassifyContext reports Fatal for cancellation so no dialect ever retries
// after the user interrupted the run.
func ClassifyContext(err error) (ErrorClass, bool) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Fatal, true
	}
	return Transient, false
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
