package migrator

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-dbal/tablemodel/schema"
)

func nullString(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func nullBool(b bool) sql.NullBool { return sql.NullBool{Bool: b, Valid: true} }

func TestColumnTypeColumn(t *testing.T) {
	results := []struct {
		ColumnType ColumnType
		Column     schema.Column
	}{
		{
			ColumnType{
				NameValue: nullString("id"), DataTypeValue: nullString("int"), ColumnTypeValue: nullString("int(11)"),
				PrimaryKeyValue: nullBool(true), AutoIncrementValue: nullBool(true), NullableValue: nullBool(false),
			},
			schema.Column{Name: "id", DataType: schema.Integer, DBType: "int(11)", PrimaryKey: true, AutoIncrement: true},
		},
		{
			ColumnType{NameValue: nullString("label"), DataTypeValue: nullString("character varying"), NullableValue: nullBool(true)},
			schema.Column{Name: "label", DataType: schema.String, DBType: "character varying", Nullable: true},
		},
		{
			ColumnType{NameValue: nullString("flag"), DataTypeValue: nullString("tinyint"), ColumnTypeValue: nullString("tinyint(1)")},
			schema.Column{Name: "flag", DataType: schema.Boolean, DBType: "tinyint(1)"},
		},
		{
			ColumnType{NameValue: nullString("shape"), DataTypeValue: nullString("geometry"), ColumnTypeValue: nullString("")},
			schema.Column{Name: "shape", DataType: schema.Unknown, DBType: "geometry"},
		},
	}

	for _, result := range results {
		assert.Equal(t, result.Column, result.ColumnType.Column(), result.ColumnType.Name())
	}
}

func TestColumnTypeAccessors(t *testing.T) {
	ct := ColumnType{NameValue: nullString("score"), DataTypeValue: nullString("numeric"), DefaultValueValue: nullString("0")}

	assert.Equal(t, "score", ct.Name())
	assert.Equal(t, "numeric", ct.DatabaseTypeName())

	_, ok := ct.ColumnType()
	assert.False(t, ok)

	_, ok = ct.PrimaryKey()
	assert.False(t, ok)

	value, ok := ct.DefaultValue()
	assert.True(t, ok)
	assert.Equal(t, "0", value)
}
