package tablemodel

import (
	"fmt"
	"reflect"

	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/schema"
	"github.com/go-dbal/tablemodel/utils"
)

// Operator comparison applied by a Filter
type Operator string

const (
	OpEq        Operator = "eq"
	OpNeq       Operator = "neq"
	OpLt        Operator = "lt"
	OpLte       Operator = "lte"
	OpGt        Operator = "gt"
	OpGte       Operator = "gte"
	OpLike      Operator = "like"
	OpNotLike   Operator = "notLike"
	OpIn        Operator = "in"
	OpNotIn     Operator = "notIn"
	OpIsNull    Operator = "isNull"
	OpIsNotNull Operator = "isNotNull"
)

// Operators lists every supported operator
var Operators = []Operator{
	OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte, OpLike, OpNotLike, OpIn, OpNotIn, OpIsNull, OpIsNotNull,
}

// Valid reports whether op is a supported operator
func (op Operator) Valid() bool {
	for _, o := range Operators {
		if o == op {
			return true
		}
	}
	return false
}

// Filter one condition of a WHERE clause, filters are joined with AND.
// Value is ignored by isNull and isNotNull.
type Filter struct {
	Column string
	Op     Operator
	Value  interface{}
}

// Where builds a Filter
func Where(column string, op Operator, value ...interface{}) Filter {
	f := Filter{Column: column, Op: op}
	if len(value) > 0 {
		f.Value = value[0]
	}
	return f
}

// whereClause validates filters against the schema and translates them to expressions
func (m *Model) whereClause(filters []Filter) (clause.Where, error) {
	exprs := make([]clause.Expression, 0, len(filters))
	for _, f := range filters {
		if !m.schema.HasColumn(f.Column) {
			return clause.Where{}, fmt.Errorf("%w: %q in filter on table %q", ErrUnknownColumn, f.Column, m.schema.Table)
		}

		expr, err := m.filterExpr(f)
		if err != nil {
			return clause.Where{}, err
		}
		exprs = append(exprs, expr)
	}
	return clause.Where{Exprs: exprs}, nil
}

func (m *Model) filterExpr(f Filter) (clause.Expression, error) {
	column := clause.Column{Name: f.Column}

	switch f.Op {
	case OpEq:
		return clause.Eq{Column: column, Value: f.Value}, nil
	case OpNeq:
		return clause.Neq{Column: column, Value: f.Value}, nil
	case OpLt:
		return clause.Lt{Column: column, Value: f.Value}, nil
	case OpLte:
		return clause.Lte{Column: column, Value: f.Value}, nil
	case OpGt:
		return clause.Gt{Column: column, Value: f.Value}, nil
	case OpGte:
		return clause.Gte{Column: column, Value: f.Value}, nil
	case OpLike:
		return clause.Like{Column: column, Value: f.Value}, nil
	case OpNotLike:
		return clause.Not(clause.Like{Column: column, Value: f.Value}), nil
	case OpIn:
		return m.inExpr(column, f.Value, false)
	case OpNotIn:
		return m.inExpr(column, f.Value, true)
	case OpIsNull:
		return clause.Eq{Column: column, Value: nil}, nil
	case OpIsNotNull:
		return clause.Neq{Column: column, Value: nil}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, f.Op)
	}
}

// ParamTypeOf returns how an IN list on a column of dataType is bound
func ParamTypeOf(dataType schema.DataType) clause.ParamType {
	switch dataType {
	case schema.Integer:
		return clause.ParamIntArray
	case schema.String:
		return clause.ParamStrArray
	default:
		return clause.ParamDefault
	}
}

func (m *Model) inExpr(column clause.Column, value interface{}, negate bool) (clause.Expression, error) {
	values, isList := toList(value)
	if !isList {
		// a single value compares for equality
		if negate {
			return clause.Not(clause.IN{Column: column, Values: []interface{}{value}}), nil
		}
		return clause.IN{Column: column, Values: []interface{}{value}}, nil
	}

	typ := ParamTypeOf(m.schema.DataTypeOf(column.Name))
	values, err := coerceList(values, typ)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q", err, column.Name)
	}

	if arrays, ok := m.db.Dialector.(ArrayDialector); ok && len(values) > 0 {
		if expr, ok := arrays.ArrayExpr(column, values, typ, negate); ok {
			return expr, nil
		}
	}

	if negate {
		return clause.Not(clause.IN{Column: column, Values: values}), nil
	}
	return clause.IN{Column: column, Values: values}, nil
}

// toList flattens any slice or array except []byte, which binds as one value
func toList(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []byte, nil:
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	values := make([]interface{}, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values, true
}

func coerceList(values []interface{}, typ clause.ParamType) ([]interface{}, error) {
	coerced := make([]interface{}, len(values))
	for idx, v := range values {
		if v == nil {
			// NULL matches nothing in an IN list, it is bound as is
			continue
		}

		switch typ {
		case clause.ParamIntArray:
			i, ok := utils.ToInt64(v)
			if !ok {
				return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, v)
			}
			coerced[idx] = i
		case clause.ParamStrArray:
			coerced[idx] = utils.ToString(v)
		default:
			coerced[idx] = v
		}
	}
	return coerced, nil
}
