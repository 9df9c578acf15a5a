package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database"
	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/fatih/color"
)

const createPrompt = "Your database doesn't exist, would you like to create it (Y/n)? "

// ConfirmFunc asks the operator a yes/no question.
type ConfirmFunc func(prompt string) (bool, error)

type Options struct {
	Dialect  database.Dialect
	Params   common.ConnParams
	Database string

	// AutoCreate skips Confirm when the target database is missing.
	AutoCreate bool
	Confirm    ConfirmFunc

	Policy RetryPolicy
	Sleep  func(ctx context.Context, d time.Duration) error
	Out    io.Writer
}

// Manager turns connection parameters into a usable handle, retrying
// transient failures and creating the target database when it is missing.
type Manager struct {
	dialect    database.Dialect
	params     common.ConnParams
	database   string
	autoCreate bool
	confirm    ConfirmFunc
	policy     RetryPolicy
	sleep      func(ctx context.Context, d time.Duration) error
	out        io.Writer
}

func New(opts Options) *Manager {
	m := &Manager{
		dialect:    opts.Dialect,
		params:     opts.Params,
		database:   opts.Database,
		autoCreate: opts.AutoCreate,
		confirm:    opts.Confirm,
		policy:     opts.Policy,
		sleep:      opts.Sleep,
		out:        opts.Out,
	}
	if m.policy == (RetryPolicy{}) {
		m.policy = DefaultRetryPolicy
	}
	if m.sleep == nil {
		m.sleep = common.Sleep
	}
	if m.out == nil {
		m.out = os.Stdout
	}
	if m.confirm == nil {
		m.confirm = func(string) (bool, error) { return false, nil }
	}
	return m
}

// Acquire blocks until the target database accepts a connection or a
// terminal condition is reached. The caller owns the returned handle.
func (m *Manager) Acquire(ctx context.Context) (*sql.DB, error) {
	state := NewRetryState()
	var conn *sql.DB
	for conn == nil {
		var err error
		conn, state, err = m.attempt(ctx, state)
		if err != nil {
			return nil, err
		}
	}
	color.New(color.FgGreen).Fprintln(m.out, "✅ Connected to database successfully")
	return conn, nil
}

// attempt makes one connection attempt. A nil handle with a nil error means
// the caller should try again with the returned state.
func (m *Manager) attempt(ctx context.Context, state RetryState) (*sql.DB, RetryState, error) {
	conn, err := m.open(ctx, m.database)
	if err == nil {
		return conn, state, nil
	}

	switch m.dialect.ClassifyConnectError(err, m.database) {
	case common.MissingDatabase:
		if err := m.recoverMissingDatabase(ctx); err != nil {
			return nil, state, err
		}
		return nil, state, nil
	case common.Fatal:
		return nil, state, &FatalError{Err: err}
	}

	state = state.Next(m.policy)
	if state.Exhausted(m.policy) {
		color.New(color.FgRed).Fprintln(m.out, "❌ Giving up on connecting to the database")
		return nil, state, &GiveUpError{Attempts: state.Attempt, Err: err}
	}

	color.New(color.FgYellow).Fprintf(m.out, "⚠️  Couldn't connect to the %s instance, trying again in %d second(s).\n",
		m.dialect.Name(), state.Wait)
	fmt.Fprintf(m.out, "   %v\n", err)

	if err := m.sleep(ctx, state.Delay(m.policy)); err != nil {
		return nil, state, &FatalError{Err: err}
	}
	return nil, state, nil
}

func (m *Manager) recoverMissingDatabase(ctx context.Context) error {
	if !m.autoCreate {
		ok, err := m.confirm(createPrompt)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return ErrDeclined
		}
	}

	color.New(color.FgCyan).Fprintf(m.out, "🛠️  Creating database %s\n", m.database)
	if err := m.createDatabase(ctx); err != nil {
		color.New(color.FgRed).Fprintln(m.out, "❌ Wasn't able to create the database.")
		return &CreateDatabaseError{Database: m.database, Err: err}
	}
	return nil
}

func (m *Manager) createDatabase(ctx context.Context) error {
	admin, err := m.open(ctx, m.dialect.AdminDatabase())
	if err != nil {
		return fmt.Errorf("failed to connect to administrative database: %w", err)
	}
	defer admin.Close()

	if _, err := admin.ExecContext(ctx, m.dialect.CreateDatabaseSQL(m.database)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

func (m *Manager) open(ctx context.Context, name string) (*sql.DB, error) {
	conn, err := sql.Open(m.dialect.DriverName(), m.dialect.DSN(m.params, name))
	if err != nil {
		return nil, err
	}
	// One connection for the whole run.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
