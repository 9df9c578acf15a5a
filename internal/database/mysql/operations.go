package mysql

import (
	"errors"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/go-sql-driver/mysql"
)

// Server error numbers, see include/mysqld_error.h.
const (
	erBadDB       = 1049
	erTableExists = 1050
	erBadTable    = 1051
	erNoSuchTable = 1146
)

// clientConfigErrors are raised by the driver before a retry could ever
// succeed: the account or server needs a different client setup.
var clientConfigErrors = []error{
	mysql.ErrCleartextPassword,
	mysql.ErrNativePassword,
	mysql.ErrOldPassword,
	mysql.ErrUnknownPlugin,
	mysql.ErrOldProtocol,
	mysql.ErrNoTLS,
}

func (d *Dialect) ClassifyConnectError(err error, database string) common.ErrorClass {
	if class, ok := common.ClassifyContext(err); ok {
		return class
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == erBadDB {
		return common.MissingDatabase
	}
	for _, target := range clientConfigErrors {
		if errors.Is(err, target) {
			return common.Fatal
		}
	}
	return common.Transient
}

func (d *Dialect) ClassifySchemaError(err error) common.SchemaErrorClass {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return common.SchemaOther
	}
	switch myErr.Number {
	case erBadTable, erNoSuchTable:
		return common.TableMissing
	case erTableExists:
		return common.TableExists
	}
	return common.SchemaOther
}
