package database

import (
	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/Masterminds/squirrel"
)

// Dialect is everything the seeding pipeline needs to know about one engine.
type Dialect interface {
	// Name is the human readable engine name used in console output.
	Name() string
	DriverName() string
	DefaultPort() int
	DSN(params common.ConnParams, database string) string

	// AdminDatabase is the database used to issue CREATE DATABASE when the
	// target one is missing. An empty name means "no database selected".
	AdminDatabase() string
	CreateDatabaseSQL(name string) string

	DropTableSQL(table string) string
	LocationTable() common.Table
	EmployeeTable() common.Table

	// QuoteString renders s as a string literal for this engine.
	QuoteString(s string) string
	PlaceholderFormat() squirrel.PlaceholderFormat

	ClassifyConnectError(err error, database string) common.ErrorClass
	ClassifySchemaError(err error) common.SchemaErrorClass
}
