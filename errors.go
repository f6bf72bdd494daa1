package tablemodel

import (
	"errors"

	"github.com/go-dbal/tablemodel/schema"
)

var (
	// ErrTableNotFound table does not exist in the connected database
	ErrTableNotFound = schema.ErrTableNotFound
	// ErrUnknownColumn column is not part of the table
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicatedProjection two projected columns are returned under the same key
	ErrDuplicatedProjection = errors.New("duplicated projection key")
	// ErrUnknownOperator filter operator is not supported
	ErrUnknownOperator = errors.New("unknown filter operator")
	// ErrInvalidDirection order direction is neither ASC nor DESC
	ErrInvalidDirection = errors.New("invalid order direction")
	// ErrMissingWhereClause update or delete without filters while BlockGlobalUpdate is set
	ErrMissingWhereClause = errors.New("WHERE conditions required")
	// ErrEmptyData update without any column to set
	ErrEmptyData = errors.New("no data to set")
	// ErrInvalidValue value cannot be converted to the column type
	ErrInvalidValue = schema.ErrInvalidValue
	// ErrInvalidLimit malformed limit specification
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrInvalidFilter malformed filter specification
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidReturnMode unknown read return mode
	ErrInvalidReturnMode = errors.New("invalid return mode")
	// ErrDuplicatedKey occurs when there is a unique key constraint violation
	ErrDuplicatedKey = errors.New("duplicated key not allowed")
	// ErrForeignKeyViolated occurs when there is a foreign key constraint violation
	ErrForeignKeyViolated = errors.New("violates foreign key constraint")
)

// ErrInvalidDB the dialector did not provide a connection pool
var ErrInvalidDB = errors.New("invalid db, connection pool not initialized")
