package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/migrator"
	"github.com/go-dbal/tablemodel/schema"
)

// Migrator introspects through sqlite_master and PRAGMA table_info
type Migrator struct {
	migrator.Migrator
}

func (m Migrator) CurrentDatabase(ctx context.Context) string {
	return "main"
}

func (m Migrator) HasTable(ctx context.Context, table string) (bool, error) {
	var count int64
	stmt := tablemodel.NewStatement(ctx, m.DB, table)
	stmt.WriteString("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=")
	stmt.AddVar(stmt, table)

	err := stmt.Query(func(rows *sql.Rows) error {
		return rows.Scan(&count)
	})
	return count > 0, err
}

// ColumnTypes reads PRAGMA table_info. A lone INTEGER primary key aliases the rowid,
// sqlite assigns it on insert so it is reported as auto increment.
func (m Migrator) ColumnTypes(ctx context.Context, table string) ([]schema.Column, error) {
	var (
		columns     []migrator.ColumnType
		primaryKeys int
	)

	stmt := tablemodel.NewStatement(ctx, m.DB, table)
	stmt.WriteString("PRAGMA table_info(")
	stmt.WriteQuoted(table)
	stmt.WriteByte(')')

	err := stmt.Query(func(rows *sql.Rows) error {
		var (
			cid     int
			notNull bool
			pk      int
			ct      migrator.ColumnType
		)
		if err := rows.Scan(&cid, &ct.NameValue, &ct.DataTypeValue, &notNull, &ct.DefaultValueValue, &pk); err != nil {
			return err
		}

		ct.ColumnTypeValue = ct.DataTypeValue
		ct.NullableValue = sql.NullBool{Bool: !notNull && pk == 0, Valid: true}
		ct.PrimaryKeyValue = sql.NullBool{Bool: pk > 0, Valid: true}
		if pk > 0 {
			primaryKeys++
		}
		columns = append(columns, ct)
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]schema.Column, len(columns))
	for idx, ct := range columns {
		isPrimaryKey, _ := ct.PrimaryKey()
		ct.AutoIncrementValue = sql.NullBool{
			Bool:  isPrimaryKey && primaryKeys == 1 && strings.EqualFold(strings.TrimSpace(ct.DatabaseTypeName()), "integer"),
			Valid: true,
		}
		results[idx] = ct.Column()
	}
	return results, nil
}
