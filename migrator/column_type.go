package migrator

import (
	"database/sql"

	"github.com/go-dbal/tablemodel/schema"
)

// ColumnType one introspected column, as scanned from the catalog
type ColumnType struct {
	NameValue          sql.NullString
	DataTypeValue      sql.NullString
	ColumnTypeValue    sql.NullString
	PrimaryKeyValue    sql.NullBool
	AutoIncrementValue sql.NullBool
	NullableValue      sql.NullBool
	DefaultValueValue  sql.NullString
}

// Name returns the name of the column.
func (ct ColumnType) Name() string {
	return ct.NameValue.String
}

// DatabaseTypeName returns the database system name of the column type, without length specifiers
func (ct ColumnType) DatabaseTypeName() string {
	return ct.DataTypeValue.String
}

// ColumnType returns the database type of the column. like `varchar(16)`
func (ct ColumnType) ColumnType() (columnType string, ok bool) {
	return ct.ColumnTypeValue.String, ct.ColumnTypeValue.Valid && ct.ColumnTypeValue.String != ""
}

// PrimaryKey returns the column is primary key or not.
func (ct ColumnType) PrimaryKey() (isPrimaryKey bool, ok bool) {
	return ct.PrimaryKeyValue.Bool, ct.PrimaryKeyValue.Valid
}

// AutoIncrement returns the column is auto increment or not.
func (ct ColumnType) AutoIncrement() (isAutoIncrement bool, ok bool) {
	return ct.AutoIncrementValue.Bool, ct.AutoIncrementValue.Valid
}

// Nullable reports whether the column may be null.
func (ct ColumnType) Nullable() (nullable bool, ok bool) {
	return ct.NullableValue.Bool, ct.NullableValue.Valid
}

// DefaultValue returns the default value of current column.
func (ct ColumnType) DefaultValue() (value string, ok bool) {
	return ct.DefaultValueValue.String, ct.DefaultValueValue.Valid
}

// Column converts to the schema descriptor, the full column type wins over the bare type name
func (ct ColumnType) Column() schema.Column {
	dbType, ok := ct.ColumnType()
	if !ok {
		dbType = ct.DatabaseTypeName()
	}

	column := schema.Column{Name: ct.Name(), DBType: dbType, DataType: schema.ParseDataType(dbType)}
	column.PrimaryKey, _ = ct.PrimaryKey()
	column.AutoIncrement, _ = ct.AutoIncrement()
	column.Nullable, _ = ct.Nullable()
	return column
}
