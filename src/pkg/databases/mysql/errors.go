package mysql

import (
	"errors"

	driver "github.com/go-sql-driver/mysql"
)

const (
	codeDuplicateEntry  = 1062
	codeNoReferencedRow = 1452
)

func IsDuplicateEntry(err error) bool {
	var myErr *driver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == codeDuplicateEntry
}

func IsForeignKeyViolation(err error) bool {
	var myErr *driver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == codeNoReferencedRow
}
