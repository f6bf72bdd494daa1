package sqlite

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/go-dbal/tablemodel"
)

var errCodes = map[sqlite3.ErrNoExtended]error{
	sqlite3.ErrConstraintUnique:     tablemodel.ErrDuplicatedKey,
	sqlite3.ErrConstraintPrimaryKey: tablemodel.ErrDuplicatedKey,
	sqlite3.ErrConstraintForeignKey: tablemodel.ErrForeignKeyViolated,
}

// Translate it will translate the error to native tablemodel errors.
func (dialector Dialector) Translate(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if translated, found := errCodes[sqliteErr.ExtendedCode]; found {
			return fmt.Errorf("%w: %w", translated, err)
		}
	}
	return err
}
