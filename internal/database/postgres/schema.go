package postgres

import (
	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/jackc/pgx/v5"
)

const locationDDL = `CREATE TABLE location (
		office_id SERIAL NOT NULL PRIMARY KEY,
		address TEXT,
		city TEXT,
		state TEXT)`

const employeeDDL = `CREATE TABLE employee (
		emp_id SERIAL NOT NULL PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		title TEXT,
		office_id INT,
		pwd TEXT,
		ipaddr TEXT,
		ssn TEXT)`

func (d *Dialect) LocationTable() common.Table {
	return common.Table{Name: "location", CreateSQL: locationDDL}
}

func (d *Dialect) EmployeeTable() common.Table {
	return common.Table{Name: "employee", CreateSQL: employeeDDL}
}

func (d *Dialect) DropTableSQL(table string) string {
	return "DROP TABLE " + pgx.Identifier{table}.Sanitize()
}
