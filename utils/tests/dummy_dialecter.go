// Package tests holds helpers for tests building SQL without a database
package tests

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/logger"
)

// ErrDummyConn returned by every DummyConnPool call
var ErrDummyConn = errors.New("dummy connection")

// DummyDialector quotes with backticks and binds with ?, it never talks to a database
type DummyDialector struct{}

func (DummyDialector) Name() string {
	return "dummy"
}

func (DummyDialector) Initialize(db *tablemodel.DB) error {
	db.ConnPool = DummyConnPool{}
	return nil
}

func (DummyDialector) Migrator(*tablemodel.DB) tablemodel.Migrator {
	return nil
}

func (DummyDialector) BindVarTo(writer clause.Writer, stmt *tablemodel.Statement, v interface{}) {
	writer.WriteByte('?')
}

func (DummyDialector) QuoteTo(writer clause.Writer, str string) {
	writer.WriteByte('`')
	writer.WriteString(strings.ReplaceAll(str, "`", "``"))
	writer.WriteByte('`')
}

func (DummyDialector) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, nil, `"`, vars...)
}

// DummyConnPool fails every call
type DummyConnPool struct{}

func (DummyConnPool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, ErrDummyConn
}

func (DummyConnPool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, ErrDummyConn
}

func (DummyConnPool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}
