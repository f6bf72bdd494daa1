package schema

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrTableNotFound table does not exist in the connected database
var ErrTableNotFound = errors.New("table not found")

// Introspector reads table metadata from a live database
type Introspector interface {
	HasTable(ctx context.Context, table string) (bool, error)
	ColumnTypes(ctx context.Context, table string) ([]Column, error)
	Quote(name string) string
}

// Schema is the column snapshot of one table, taken once when loaded.
// It is never modified afterwards, so it can be shared between goroutines.
type Schema struct {
	Table       string
	QuotedTable string

	columns     map[string]Column
	dataTypes   map[string]DataType
	columnNames []string

	autoIncrementOnce sync.Once
	hasAutoIncrement  bool
}

// Load checks that table exists and snapshots its columns
func Load(ctx context.Context, introspector Introspector, table string) (*Schema, error) {
	exists, err := introspector.HasTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, table)
	}

	columns, err := introspector.ColumnTypes(ctx, table)
	if err != nil {
		return nil, err
	}

	return New(table, introspector.Quote(table), columns), nil
}

// New builds a Schema from already introspected columns
func New(table, quotedTable string, columns []Column) *Schema {
	s := &Schema{
		Table:       table,
		QuotedTable: quotedTable,
		columns:     make(map[string]Column, len(columns)),
		dataTypes:   make(map[string]DataType, len(columns)),
		columnNames: make([]string, 0, len(columns)),
	}

	for _, column := range columns {
		if _, ok := s.columns[column.Name]; ok {
			continue
		}
		if column.DataType == "" {
			column.DataType = ParseDataType(column.DBType)
		}

		s.columns[column.Name] = column
		s.dataTypes[column.Name] = column.DataType
		s.columnNames = append(s.columnNames, column.Name)
	}

	return s
}

// HasAutoIncrement reports whether any column is assigned by the database on insert.
// Computed on first use and kept for the lifetime of the schema.
func (s *Schema) HasAutoIncrement() bool {
	s.autoIncrementOnce.Do(func() {
		for _, name := range s.columnNames {
			if s.columns[name].AutoIncrement {
				s.hasAutoIncrement = true
				break
			}
		}
	})
	return s.hasAutoIncrement
}

// AutoIncrementColumn returns the first autoincrement column in schema order
func (s *Schema) AutoIncrementColumn() (Column, bool) {
	if !s.HasAutoIncrement() {
		return Column{}, false
	}

	for _, name := range s.columnNames {
		if column := s.columns[name]; column.AutoIncrement {
			return column, true
		}
	}
	return Column{}, false
}

func (s *Schema) Column(name string) (Column, bool) {
	column, ok := s.columns[name]
	return column, ok
}

func (s *Schema) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// ColumnNames returns all column names in schema order
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columnNames))
	copy(names, s.columnNames)
	return names
}

// DataTypeOf returns the logical type of column name, Unknown when absent
func (s *Schema) DataTypeOf(name string) DataType {
	if dataType, ok := s.dataTypes[name]; ok {
		return dataType
	}
	return Unknown
}

// IsSimpleType reports whether the column is an integer or string column
func (s *Schema) IsSimpleType(name string) bool {
	switch s.DataTypeOf(name) {
	case Integer, String:
		return true
	}
	return false
}

func (s *Schema) String() string {
	return s.Table
}
