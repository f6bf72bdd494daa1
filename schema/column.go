package schema

import (
	"strings"
)

// DataType is the engine independent classification of a column
type DataType string

const (
	Integer  DataType = "integer"
	SmallInt DataType = "smallint"
	BigInt   DataType = "bigint"
	String   DataType = "string"
	Text     DataType = "text"
	Decimal  DataType = "decimal"
	Float    DataType = "float"
	Boolean  DataType = "boolean"
	DateTime DataType = "datetime"
	Date     DataType = "date"
	Time     DataType = "time"
	Binary   DataType = "binary"
	Unknown  DataType = "unknown"
)

// Column describes one column of a table as reported by the database
type Column struct {
	Name          string
	DataType      DataType
	DBType        string // native type, e.g. varchar(255)
	AutoIncrement bool
	PrimaryKey    bool
	Nullable      bool
}

// ParseDataType maps a native column type to its logical type
func ParseDataType(dbType string) DataType {
	t := strings.ToLower(strings.TrimSpace(dbType))

	if t == "tinyint(1)" {
		return Boolean
	}

	if idx := strings.IndexByte(t, '('); idx >= 0 {
		t = strings.TrimSpace(t[:idx])
	}
	t = strings.TrimSpace(strings.TrimSuffix(t, " unsigned"))

	switch t {
	case "int", "integer", "int4", "mediumint", "serial":
		return Integer
	case "bigint", "int8", "bigserial":
		return BigInt
	case "smallint", "int2", "tinyint", "smallserial":
		return SmallInt
	case "decimal", "numeric", "money":
		return Decimal
	case "real", "float", "float4", "float8", "double", "double precision":
		return Float
	case "bool", "boolean":
		return Boolean
	case "char", "varchar", "character", "character varying", "nchar", "nvarchar", "varchar2", "uuid", "enum":
		return String
	case "text", "tinytext", "mediumtext", "longtext", "clob":
		return Text
	case "datetime", "timestamp", "timestamptz", "timestamp with time zone", "timestamp without time zone":
		return DateTime
	case "date":
		return Date
	case "time", "timetz", "time with time zone", "time without time zone":
		return Time
	case "blob", "tinyblob", "mediumblob", "longblob", "bytea", "binary", "varbinary":
		return Binary
	}

	return Unknown
}
