package tablemodel

import (
	"context"
	"database/sql"

	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/schema"
)

// Dialector database dialector
type Dialector interface {
	Name() string
	Initialize(*DB) error
	Migrator(db *DB) Migrator
	BindVarTo(writer clause.Writer, stmt *Statement, v interface{})
	QuoteTo(clause.Writer, string)
	Explain(sql string, vars ...interface{}) string
}

// Migrator reads table metadata, it is the introspector the schema cache is loaded from
type Migrator interface {
	schema.Introspector
	CurrentDatabase(ctx context.Context) string
}

// ConnPool db conns pool interface
type ConnPool interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Returner is implemented by dialects whose drivers cannot report the last insert id,
// generated keys are read back with RETURNING instead
type Returner interface {
	Returning() bool
}

// ArrayDialector is implemented by dialects that bind a whole IN list as one typed array parameter
type ArrayDialector interface {
	ArrayExpr(column clause.Column, values []interface{}, typ clause.ParamType, negate bool) (clause.Expression, bool)
}

// ErrorTranslator is implemented by dialects that recognize constraint violations of their driver,
// Translate returns err wrapped with ErrDuplicatedKey or ErrForeignKeyViolated, or err unchanged
type ErrorTranslator interface {
	Translate(err error) error
}

// Closer is implemented by connection pools owning their connections
type Closer interface {
	Close() error
}
