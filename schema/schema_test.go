package schema_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-dbal/tablemodel/mocks"
	"github.com/go-dbal/tablemodel/schema"
)

var productColumns = []schema.Column{
	{Name: "id", DBType: "INTEGER", AutoIncrement: true, PrimaryKey: true},
	{Name: "name", DBType: "VARCHAR(255)"},
	{Name: "price", DBType: "DECIMAL(10,2)"},
	{Name: "notes", DBType: "TEXT", Nullable: true},
	{Name: "created_at", DBType: "DATETIME"},
}

func quoteBackticks(name string) string { return "`" + name + "`" }

func TestLoad(t *testing.T) {
	ctx := context.Background()
	introspector := new(mocks.Introspector)
	introspector.On("HasTable", ctx, "products").Return(true, nil)
	introspector.On("ColumnTypes", ctx, "products").Return(productColumns, nil)
	introspector.On("Quote", "products").Return(quoteBackticks)

	s, err := schema.Load(ctx, introspector, "products")
	require.NoError(t, err)

	assert.Equal(t, "products", s.Table)
	assert.Equal(t, "`products`", s.QuotedTable)
	assert.Equal(t, []string{"id", "name", "price", "notes", "created_at"}, s.ColumnNames())
	assert.True(t, s.HasAutoIncrement())

	column, ok := s.Column("price")
	require.True(t, ok)
	assert.Equal(t, schema.Decimal, column.DataType)
	assert.Equal(t, schema.Integer, s.DataTypeOf("id"))
	assert.Equal(t, schema.Unknown, s.DataTypeOf("missing"))

	introspector.AssertExpectations(t)
}

func TestLoadTableNotFound(t *testing.T) {
	ctx := context.Background()
	introspector := new(mocks.Introspector)
	introspector.On("HasTable", ctx, "ghosts").Return(false, nil)

	_, err := schema.Load(ctx, introspector, "ghosts")
	assert.ErrorIs(t, err, schema.ErrTableNotFound)
	introspector.AssertNotCalled(t, "ColumnTypes", mock.Anything, mock.Anything)
}

func TestLoadIntrospectionError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	introspector := new(mocks.Introspector)
	introspector.On("HasTable", ctx, "products").Return(true, nil)
	introspector.On("ColumnTypes", ctx, "products").Return(nil, boom)

	_, err := schema.Load(ctx, introspector, "products")
	assert.ErrorIs(t, err, boom)
}

func TestHasAutoIncrement(t *testing.T) {
	plain := schema.New("tags", `"tags"`, []schema.Column{{Name: "name", DBType: "text"}})
	assert.False(t, plain.HasAutoIncrement())

	_, ok := plain.AutoIncrementColumn()
	assert.False(t, ok)

	s := schema.New("products", `"products"`, productColumns)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, s.HasAutoIncrement())
		}()
	}
	wg.Wait()

	column, ok := s.AutoIncrementColumn()
	require.True(t, ok)
	assert.Equal(t, "id", column.Name)
}

func TestIsSimpleType(t *testing.T) {
	s := schema.New("products", "products", append(productColumns, schema.Column{Name: "stock", DBType: "bigint"}))

	for name, expected := range map[string]bool{
		"id":         true,
		"name":       true,
		"price":      false,
		"notes":      false,
		"created_at": false,
		"stock":      false,
		"missing":    false,
	} {
		assert.Equal(t, expected, s.IsSimpleType(name), name)
	}
}

func TestColumnNamesIsACopy(t *testing.T) {
	s := schema.New("products", "products", productColumns)
	names := s.ColumnNames()
	names[0] = "changed"

	assert.Equal(t, "id", s.ColumnNames()[0])
}

func TestNewSkipsDuplicateColumns(t *testing.T) {
	s := schema.New("t", "t", []schema.Column{
		{Name: "a", DBType: "int"},
		{Name: "a", DBType: "text"},
	})

	assert.Equal(t, []string{"a"}, s.ColumnNames())
	assert.Equal(t, schema.Integer, s.DataTypeOf("a"))
}
