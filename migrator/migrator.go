// Package migrator holds the table introspection shared by the dialects
package migrator

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/schema"
)

// Config schema config
type Config struct {
	DB *tablemodel.DB
	tablemodel.Dialector

	// CurrentSchema SQL expression naming the schema tables are looked up in, e.g. DATABASE()
	CurrentSchema string
	// ColumnsQuery selects name, data type, column type, primary key, auto increment,
	// nullable and default of every column of the table bound to its only parameter,
	// in ordinal order
	ColumnsQuery string
}

// Migrator information_schema based introspection, dialects override what their engine lacks
type Migrator struct {
	Config
}

// Quote quotes an identifier with the dialect rules
func (m Migrator) Quote(name string) string {
	var builder strings.Builder
	m.Dialector.QuoteTo(&builder, name)
	return builder.String()
}

// CurrentDatabase returns the schema tables are looked up in
func (m Migrator) CurrentDatabase(ctx context.Context) (name string) {
	_ = m.DB.Query(ctx, "SELECT "+m.CurrentSchema, nil, func(rows *sql.Rows) error {
		var current sql.NullString
		err := rows.Scan(&current)
		name = current.String
		return err
	})
	return
}

// HasTable reports whether table exists in the current schema
func (m Migrator) HasTable(ctx context.Context, table string) (bool, error) {
	var count int64
	err := m.run(ctx, table, clause.Expr{
		SQL:  "SELECT count(*) FROM information_schema.tables WHERE table_schema = " + m.CurrentSchema + " AND table_name = ? AND table_type = ?",
		Vars: []interface{}{table, "BASE TABLE"},
	}, func(rows *sql.Rows) error {
		return rows.Scan(&count)
	})
	return count > 0, err
}

// ColumnTypes returns the columns of table in ordinal order
func (m Migrator) ColumnTypes(ctx context.Context, table string) ([]schema.Column, error) {
	var columns []schema.Column
	err := m.run(ctx, table, clause.Expr{SQL: m.ColumnsQuery, Vars: []interface{}{table}}, func(rows *sql.Rows) error {
		var ct ColumnType
		if err := rows.Scan(
			&ct.NameValue, &ct.DataTypeValue, &ct.ColumnTypeValue, &ct.PrimaryKeyValue,
			&ct.AutoIncrementValue, &ct.NullableValue, &ct.DefaultValueValue,
		); err != nil {
			return err
		}
		columns = append(columns, ct.Column())
		return nil
	})
	return columns, err
}

// run builds expr with the dialect bind vars and scans every row
func (m Migrator) run(ctx context.Context, table string, expr clause.Expr, scan func(*sql.Rows) error) error {
	stmt := tablemodel.NewStatement(ctx, m.DB, table)
	expr.Build(stmt)
	return stmt.Query(scan)
}
