package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/go-dbal/tablemodel/schema"
)

// Introspector is a testify mock of schema.Introspector
type Introspector struct {
	mock.Mock
}

func (_m *Introspector) HasTable(ctx context.Context, table string) (bool, error) {
	ret := _m.Called(ctx, table)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, table)
	} else {
		r0 = ret.Bool(0)
	}

	return r0, ret.Error(1)
}

func (_m *Introspector) ColumnTypes(ctx context.Context, table string) ([]schema.Column, error) {
	ret := _m.Called(ctx, table)

	var r0 []schema.Column
	if rf, ok := ret.Get(0).(func(context.Context, string) []schema.Column); ok {
		r0 = rf(ctx, table)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]schema.Column)
	}

	return r0, ret.Error(1)
}

func (_m *Introspector) Quote(name string) string {
	ret := _m.Called(name)

	if rf, ok := ret.Get(0).(func(string) string); ok {
		return rf(name)
	}
	return ret.String(0)
}
