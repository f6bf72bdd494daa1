package mysql

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/go-dbal/tablemodel"
)

// The error codes to map mysql errors to tablemodel errors, here is the mysql error codes reference https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html.
var errCodes = map[uint16]error{
	1062: tablemodel.ErrDuplicatedKey,
	1451: tablemodel.ErrForeignKeyViolated,
	1452: tablemodel.ErrForeignKeyViolated,
}

// Translate it will translate the error to native tablemodel errors.
func (dialector Dialector) Translate(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if translated, found := errCodes[mysqlErr.Number]; found {
			return fmt.Errorf("%w: %w", translated, err)
		}
	}
	return err
}
