package schema

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database"
	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/fatih/color"
)

// Error is a DDL failure that is not one of the expected "already there" or
// "not there" outcomes.
type Error struct {
	Table string
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s table %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Provisioner struct {
	dialect database.Dialect
	out     io.Writer
}

func NewProvisioner(dialect database.Dialect, out io.Writer) *Provisioner {
	if out == nil {
		out = os.Stdout
	}
	return &Provisioner{dialect: dialect, out: out}
}

// Provision leaves table present. With clean set the table is dropped first
// so it starts empty; otherwise existing rows are kept.
func (p *Provisioner) Provision(ctx context.Context, db common.Execer, table common.Table, clean bool) error {
	if clean {
		if err := p.drop(ctx, db, table); err != nil {
			return err
		}
	}
	return p.create(ctx, db, table)
}

func (p *Provisioner) drop(ctx context.Context, db common.Execer, table common.Table) error {
	_, err := db.ExecContext(ctx, p.dialect.DropTableSQL(table.Name))
	if err == nil {
		color.New(color.FgCyan).Fprintf(p.out, "🗑️  Dropped table %s\n", table.Name)
		return nil
	}
	if p.dialect.ClassifySchemaError(err) == common.TableMissing {
		return nil
	}
	color.New(color.FgRed).Fprintf(p.out, "❌ Failed to drop table %s\n", table.Name)
	return &Error{Table: table.Name, Op: "drop", Err: err}
}

func (p *Provisioner) create(ctx context.Context, db common.Execer, table common.Table) error {
	_, err := db.ExecContext(ctx, table.CreateSQL)
	if err == nil {
		color.New(color.FgGreen).Fprintf(p.out, "✅ Created table %s\n", table.Name)
		return nil
	}
	if p.dialect.ClassifySchemaError(err) == common.TableExists {
		color.New(color.FgYellow).Fprintf(p.out, "ℹ️  Table %s already exists, appending\n", table.Name)
		return nil
	}
	color.New(color.FgRed).Fprintf(p.out, "❌ Failed to create table %s\n", table.Name)
	return &Error{Table: table.Name, Op: "create", Err: err}
}
