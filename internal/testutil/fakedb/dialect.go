package fakedb

import (
	"errors"
	"strings"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/Masterminds/squirrel"
)

// Dialect points the pipeline at a Server. Fatal, when set, is classified as
// a non-retryable connect error.
type Dialect struct {
	Server *Server
	Fatal  error
}

func (d *Dialect) Name() string          { return "Fake" }
func (d *Dialect) DriverName() string    { return DriverName }
func (d *Dialect) DefaultPort() int      { return 1 }
func (d *Dialect) AdminDatabase() string { return "" }

func (d *Dialect) DSN(params common.ConnParams, database string) string {
	return d.Server.DSN(database)
}

func (d *Dialect) CreateDatabaseSQL(name string) string { return "CREATE DATABASE " + name }
func (d *Dialect) DropTableSQL(table string) string     { return "DROP TABLE " + table }

func (d *Dialect) LocationTable() common.Table {
	return common.Table{Name: "location", CreateSQL: "CREATE TABLE location (office_id, address, city, state)"}
}

func (d *Dialect) EmployeeTable() common.Table {
	return common.Table{Name: "employee", CreateSQL: "CREATE TABLE employee (emp_id, first_name, last_name, title, office_id, pwd, ipaddr, ssn)"}
}

func (d *Dialect) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (d *Dialect) PlaceholderFormat() squirrel.PlaceholderFormat { return squirrel.Question }

func (d *Dialect) ClassifyConnectError(err error, database string) common.ErrorClass {
	if class, ok := common.ClassifyContext(err); ok {
		return class
	}
	switch {
	case d.Fatal != nil && errors.Is(err, d.Fatal):
		return common.Fatal
	case errors.Is(err, ErrUnknownDatabase):
		return common.MissingDatabase
	}
	return common.Transient
}

func (d *Dialect) ClassifySchemaError(err error) common.SchemaErrorClass {
	switch {
	case errors.Is(err, ErrNoSuchTable):
		return common.TableMissing
	case errors.Is(err, ErrTableExists):
		return common.TableExists
	}
	return common.SchemaOther
}
