package tablemodel

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/logger"
	"github.com/go-dbal/tablemodel/schema"
)

// Statement assembles one SQL statement, it is built per call and never shared
type Statement struct {
	DB      *DB
	Table   string
	Schema  *schema.Schema
	Context context.Context
	Clauses map[string]clause.Clause

	// SQL Builder
	SQL  strings.Builder
	Vars []interface{}
}

// NewStatement returns an empty statement on table
func NewStatement(ctx context.Context, db *DB, table string) *Statement {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Statement{
		DB:      db,
		Table:   table,
		Context: logger.WithTable(ctx, table),
		Clauses: map[string]clause.Clause{},
	}
}

// WriteString write string
func (stmt *Statement) WriteString(str string) (int, error) {
	return stmt.SQL.WriteString(str)
}

// WriteByte write byte
func (stmt *Statement) WriteByte(c byte) error {
	return stmt.SQL.WriteByte(c)
}

// WriteQuoted write quoted value
func (stmt *Statement) WriteQuoted(value interface{}) {
	stmt.QuoteTo(&stmt.SQL, value)
}

// QuoteTo write quoted value to writer
func (stmt *Statement) QuoteTo(writer clause.Writer, field interface{}) {
	write := func(raw bool, str string) {
		if raw {
			writer.WriteString(str)
		} else {
			stmt.DB.Dialector.QuoteTo(writer, str)
		}
	}

	switch v := field.(type) {
	case clause.Table:
		if v.Name == clause.CurrentTable {
			write(v.Raw, stmt.Table)
		} else {
			write(v.Raw, v.Name)
		}

		if v.Alias != "" {
			writer.WriteString(" AS ")
			write(v.Raw, v.Alias)
		}
	case clause.Column:
		if v.Table != "" {
			if v.Table == clause.CurrentTable {
				write(v.Raw, stmt.Table)
			} else {
				write(v.Raw, v.Table)
			}
			writer.WriteByte('.')
		}

		write(v.Raw, v.Name)

		if v.Alias != "" {
			writer.WriteString(" AS ")
			write(v.Raw, v.Alias)
		}
	case string:
		stmt.DB.Dialector.QuoteTo(writer, v)
	default:
		stmt.DB.Dialector.QuoteTo(writer, fmt.Sprint(field))
	}
}

// Quote returns quoted value
func (stmt *Statement) Quote(field interface{}) string {
	var builder strings.Builder
	stmt.QuoteTo(&builder, field)
	return builder.String()
}

// AddVar add var, values are always bound, identifiers are quoted
func (stmt *Statement) AddVar(writer clause.Writer, vars ...interface{}) {
	for idx, v := range vars {
		if idx > 0 {
			writer.WriteByte(',')
		}

		switch v := v.(type) {
		case clause.Column, clause.Table:
			stmt.QuoteTo(writer, v)
		case clause.Expression:
			v.Build(stmt)
		case []interface{}:
			if len(v) > 0 {
				writer.WriteByte('(')
				stmt.AddVar(writer, v...)
				writer.WriteByte(')')
			} else {
				writer.WriteString("(NULL)")
			}
		default:
			stmt.Vars = append(stmt.Vars, v)
			stmt.DB.Dialector.BindVarTo(writer, stmt, v)
		}
	}
}

// AddClause add clause
func (stmt *Statement) AddClause(v clause.Interface) {
	name := v.Name()
	c, ok := stmt.Clauses[name]
	if !ok {
		c.Name = name
	}
	v.MergeClause(&c)
	stmt.Clauses[name] = c
}

// Build build sql with clauses names
func (stmt *Statement) Build(clauses ...string) {
	var firstClauseWritten bool

	for _, name := range clauses {
		if c, ok := stmt.Clauses[name]; ok {
			if firstClauseWritten {
				stmt.WriteByte(' ')
			}

			firstClauseWritten = true
			if b, ok := stmt.DB.ClauseBuilders[name]; ok {
				b(c, stmt)
			} else {
				c.Build(stmt)
			}
		}
	}
}

// Exec executes the built statement
func (stmt *Statement) Exec() (sql.Result, error) {
	return stmt.DB.Exec(stmt.Context, stmt.SQL.String(), stmt.Vars...)
}

// Query executes the built statement, scan is called once per returned row
func (stmt *Statement) Query(scan func(*sql.Rows) error) error {
	return stmt.DB.Query(stmt.Context, stmt.SQL.String(), stmt.Vars, scan)
}
