package cmd

import (
	"errors"
	"io"

	"github.com/Lumos-Labs-HQ/officefaker/internal/config"
	"github.com/Lumos-Labs-HQ/officefaker/internal/db"
	"github.com/Lumos-Labs-HQ/officefaker/internal/schema"
	"github.com/Lumos-Labs-HQ/officefaker/internal/seeder"
	"github.com/fatih/color"
)

// ExitCode maps the outcome of a run to the process exit status.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, db.ErrDeclined) {
		return 0
	}

	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		if cfgErr.Kind == config.Missing {
			return 2
		}
		return 1
	}

	var (
		createErr *db.CreateDatabaseError
		giveUpErr *db.GiveUpError
		fatalErr  *db.FatalError
		schemaErr *schema.Error
		seedErr   *seeder.Error
	)
	switch {
	case errors.As(err, &createErr):
		return 1
	case errors.As(err, &giveUpErr), errors.As(err, &fatalErr), errors.As(err, &schemaErr), errors.As(err, &seedErr):
		return 2
	}
	return 1
}

// report prints err in the matching style and returns the exit code.
func report(out io.Writer, err error) int {
	code := ExitCode(err)
	switch {
	case err == nil:
	case code == 0:
		color.New(color.FgYellow).Fprintln(out, err.Error())
	default:
		color.New(color.FgRed).Fprintf(out, "❌ %v\n", err)
	}
	return code
}
