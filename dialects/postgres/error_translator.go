package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/go-dbal/tablemodel"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
var errCodes = map[pq.ErrorCode]error{
	"23505": tablemodel.ErrDuplicatedKey,
	"23503": tablemodel.ErrForeignKeyViolated,
}

// Translate it will translate the error to native tablemodel errors.
func (dialector Dialector) Translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if translated, found := errCodes[pqErr.Code]; found {
			return fmt.Errorf("%w: %w", translated, err)
		}
	}
	return err
}
