package postgres

import (
	"errors"
	"regexp"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes, see Appendix A of the PostgreSQL manual.
const (
	invalidCatalogName = "3D000"
	undefinedTable     = "42P01"
	duplicateTable     = "42P07"
)

func (d *Dialect) ClassifyConnectError(err error, database string) common.ErrorClass {
	if class, ok := common.ClassifyContext(err); ok {
		return class
	}
	var parseErr *pgconn.ParseConfigError
	if errors.As(err, &parseErr) {
		return common.Fatal
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == invalidCatalogName {
			return common.MissingDatabase
		}
		return common.Transient
	}
	// Some poolers and proxies relay the server message without the code.
	if missingDatabasePattern(database).MatchString(err.Error()) {
		return common.MissingDatabase
	}
	return common.Transient
}

func missingDatabasePattern(database string) *regexp.Regexp {
	return regexp.MustCompile(`database "` + regexp.QuoteMeta(database) + `" does not exist`)
}

func (d *Dialect) ClassifySchemaError(err error) common.SchemaErrorClass {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return common.SchemaOther
	}
	switch pgErr.Code {
	case undefinedTable:
		return common.TableMissing
	case duplicateTable:
		return common.TableExists
	}
	return common.SchemaOther
}
