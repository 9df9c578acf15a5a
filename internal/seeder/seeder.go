package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database"
	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/Masterminds/squirrel"
	"github.com/fatih/color"
)

const savepoint = "seed_row"

type Seeder struct {
	db      *sql.DB
	dialect database.Dialect
	faker   FakeSource
	opts    Options
}

// NewSeeder borrows db; the caller keeps ownership and closes it.
func NewSeeder(db *sql.DB, opts Options) *Seeder {
	if opts.StreamDelay == 0 {
		opts.StreamDelay = DefaultStreamDelay
	}
	if opts.Sleep == nil {
		opts.Sleep = common.Sleep
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Seeder{
		db:      db,
		dialect: opts.Dialect,
		faker:   opts.Faker,
		opts:    opts,
	}
}

// SanitizeTitle keeps the part of a job title before the first slash.
func SanitizeTitle(title string) string {
	before, _, _ := strings.Cut(title, "/")
	return strings.TrimSpace(before)
}

// SeedLocations inserts count locations in a single transaction. A negative
// count inserts nothing.
func (s *Seeder) SeedLocations(ctx context.Context, count int) (Stats, error) {
	table := s.dialect.LocationTable().Name
	rows := make([]location, 0, max(count, 0))
	for i := 0; i < count; i++ {
		rows = append(rows, location{
			Address: s.faker.Street(),
			City:    s.faker.City(),
			State:   s.faker.State(),
		})
	}

	return s.inTx(ctx, table, func(tx *sql.Tx) (Stats, error) {
		var stats Stats
		for _, loc := range rows {
			ok, err := s.insertRow(ctx, tx, table,
				[]string{"address", "city", "state"},
				[]string{s.quote(loc.Address), s.quote(loc.City), s.quote(loc.State)})
			if err != nil {
				return stats, err
			}
			stats = stats.add(countRow(ok))
		}
		return stats, nil
	})
}

// SeedEmployees inserts perLocation employees for each office id from 1 to
// locationCount. Every office is committed as its own transaction.
func (s *Seeder) SeedEmployees(ctx context.Context, locationCount, perLocation int) (Stats, error) {
	table := s.dialect.EmployeeTable().Name
	var total Stats

	for officeID := 1; officeID <= locationCount; officeID++ {
		stats, err := s.inTx(ctx, table, func(tx *sql.Tx) (Stats, error) {
			return s.seedOffice(ctx, tx, table, officeID, perLocation)
		})
		total = total.add(stats)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Seeder) seedOffice(ctx context.Context, tx *sql.Tx, table string, officeID, count int) (Stats, error) {
	var stats Stats
	for i := 0; i < count; i++ {
		emp := s.newEmployee(officeID)
		ok, err := s.insertRow(ctx, tx, table,
			[]string{"first_name", "last_name", "title", "office_id", "pwd", "ipaddr", "ssn"},
			[]string{
				s.quote(emp.FirstName),
				s.quote(emp.LastName),
				s.quote(emp.Title),
				strconv.Itoa(emp.OfficeID),
				s.quote(emp.Password),
				s.quote(emp.IPAddr),
				s.quote(emp.SSN),
			})
		if err != nil {
			return stats, err
		}
		stats = stats.add(countRow(ok))

		if ok && s.opts.Stream {
			if err := s.opts.Sleep(ctx, s.opts.StreamDelay); err != nil {
				return stats, err
			}
			fmt.Fprintf(s.opts.Out, ". %s %s\n", emp.FirstName, emp.LastName)
		}
	}
	return stats, nil
}

func (s *Seeder) newEmployee(officeID int) employee {
	return employee{
		FirstName: s.faker.FirstName(),
		LastName:  s.faker.LastName(),
		Title:     SanitizeTitle(s.faker.JobTitle()),
		OfficeID:  officeID,
		Password:  s.faker.Password(),
		IPAddr:    s.faker.IPv4(),
		SSN:       s.faker.SSN(),
	}
}

// inTx runs fn in a transaction and commits it. Rows that failed inside fn
// were already rolled back to their savepoint, so only errors from fn itself
// abort the transaction.
func (s *Seeder) inTx(ctx context.Context, table string, fn func(tx *sql.Tx) (Stats, error)) (Stats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, &Error{Table: table, Op: "begin transaction", Err: err}
	}

	stats, err := fn(tx)
	if err != nil {
		tx.Rollback()
		return stats, &Error{Table: table, Op: "insert rows", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return stats, &Error{Table: table, Op: "commit transaction", Err: err}
	}
	return stats, nil
}

// insertRow inserts one row behind a savepoint. A failed insert is rolled
// back and reported as ok=false; err is only set when the transaction itself
// can no longer be used.
func (s *Seeder) insertRow(ctx context.Context, tx *sql.Tx, table string, columns, literals []string) (bool, error) {
	values := make([]any, len(literals))
	for i, lit := range literals {
		values[i] = squirrel.Expr(lit)
	}
	query, _, err := squirrel.Insert(table).Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, query); err != nil {
		color.New(color.FgYellow).Fprintf(s.opts.Out, "⚠️  Skipping row in %s: %v\n", table, err)
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			return false, fmt.Errorf("failed to roll back row: %w", rbErr)
		}
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Seeder) quote(v string) string {
	return s.dialect.QuoteString(v)
}

// Summary counts the rows currently in each table.
func (s *Seeder) Summary(ctx context.Context, tables ...string) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(tables))
	for _, table := range tables {
		query, args, err := squirrel.Select("COUNT(*)").
			From(table).
			PlaceholderFormat(s.dialect.PlaceholderFormat()).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build count query: %w", err)
		}

		var n int64
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Rows: n})
	}
	return counts, nil
}

func countRow(ok bool) Stats {
	if ok {
		return Stats{Inserted: 1}
	}
	return Stats{Failed: 1}
}
