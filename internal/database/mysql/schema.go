package mysql

import "github.com/Lumos-Labs-HQ/officefaker/internal/database/common"

const locationDDL = `CREATE TABLE location (
		office_id INT NOT NULL AUTO_INCREMENT,
		address VARCHAR(80),
		city VARCHAR(40),
		state CHAR(2),
		PRIMARY KEY (office_id))`

const employeeDDL = `CREATE TABLE employee (
		emp_id INT NOT NULL AUTO_INCREMENT,
		first_name VARCHAR(40),
		last_name VARCHAR(40),
		title VARCHAR(80),
		office_id INT,
		pwd CHAR(15),
		ipaddr CHAR(15),
		ssn CHAR(11),
		PRIMARY KEY (emp_id))`

func (d *Dialect) LocationTable() common.Table {
	return common.Table{Name: "location", CreateSQL: locationDDL}
}

func (d *Dialect) EmployeeTable() common.Table {
	return common.Table{Name: "employee", CreateSQL: employeeDDL}
}

// DropTableSQL deliberately omits IF EXISTS; a missing table is reported by
// the server and classified as ignorable.
func (d *Dialect) DropTableSQL(table string) string {
	return "DROP TABLE " + quoteIdent(table)
}
