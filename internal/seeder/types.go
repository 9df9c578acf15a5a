package seeder

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database"
)

// DefaultStreamDelay is the pause between employee rows in streaming mode.
const DefaultStreamDelay = 500 * time.Millisecond

// FakeSource supplies the values for generated rows.
type FakeSource interface {
	FirstName() string
	LastName() string
	JobTitle() string
	Password() string
	IPv4() string
	Street() string
	City() string
	State() string
	SSN() string
}

type Options struct {
	Dialect database.Dialect
	Faker   FakeSource

	// Stream throttles employee inserts and echoes each name as it lands.
	Stream      bool
	StreamDelay time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error

	Out io.Writer
}

// Stats counts the rows of one seeding call.
type Stats struct {
	Inserted int
	Failed   int
}

func (s Stats) add(o Stats) Stats {
	return Stats{Inserted: s.Inserted + o.Inserted, Failed: s.Failed + o.Failed}
}

// TableCount is one line of the closing summary.
type TableCount struct {
	Table string
	Rows  int64
}

// Error is a transaction failure that stops seeding.
type Error struct {
	Table string
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s while seeding %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type location struct {
	Address string
	City    string
	State   string
}

type employee struct {
	FirstName string
	LastName  string
	Title     string
	OfficeID  int
	Password  string
	IPAddr    string
	SSN       string
}
