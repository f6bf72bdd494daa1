package tablemodel

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFilter reads a filter from its list form, [column, op] or [column, op, value]
func ParseFilter(raw []interface{}) (Filter, error) {
	if len(raw) < 2 || len(raw) > 3 {
		return Filter{}, fmt.Errorf("%w: expected [column, operator, value], got %v", ErrInvalidFilter, raw)
	}

	column, ok := raw[0].(string)
	if !ok {
		return Filter{}, fmt.Errorf("%w: column must be a string, got %T", ErrInvalidFilter, raw[0])
	}

	op, ok := raw[1].(string)
	if !ok {
		return Filter{}, fmt.Errorf("%w: operator must be a string, got %T", ErrInvalidFilter, raw[1])
	}

	f := Filter{Column: column, Op: Operator(op)}
	if !f.Op.Valid() {
		return Filter{}, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	if len(raw) == 3 {
		f.Value = normalizeNumber(raw[2])
	}
	return f, nil
}

// ParseFilters reads a list of filters
func ParseFilters(raw []interface{}) ([]Filter, error) {
	filters := make([]Filter, 0, len(raw))
	for _, item := range raw {
		list, ok := item.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: expected a list, got %T", ErrInvalidFilter, item)
		}
		f, err := ParseFilter(list)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// ParseOrder reads an order from "column" or [column, direction]
func ParseOrder(raw interface{}) (Order, error) {
	switch v := raw.(type) {
	case string:
		return Order{Column: v}, nil
	case []interface{}:
		if len(v) == 0 || len(v) > 2 {
			break
		}
		column, ok := v[0].(string)
		if !ok {
			break
		}
		o := Order{Column: column}
		if len(v) == 2 {
			direction, ok := v[1].(string)
			if !ok {
				return Order{}, fmt.Errorf("%w: %v", ErrInvalidDirection, v[1])
			}
			o.Direction = Direction(direction)
		}
		if _, err := o.normalize(); err != nil {
			return Order{}, err
		}
		return o, nil
	}
	return Order{}, fmt.Errorf("%w: expected column or [column, direction], got %v", ErrInvalidDirection, raw)
}

// ParseOrders reads a list of orders
func ParseOrders(raw []interface{}) ([]Order, error) {
	orders := make([]Order, 0, len(raw))
	for _, item := range raw {
		o, err := ParseOrder(item)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// ParseLimit reads nil, a count, or [offset, count]. Anything else reads as no limit.
func ParseLimit(raw interface{}) *Limit {
	switch v := raw.(type) {
	case []interface{}:
		if len(v) == 2 {
			offset, okOffset := toInt(v[0])
			count, okCount := toInt(v[1])
			if okOffset && okCount {
				return Page(offset, count)
			}
		}
	default:
		if count, ok := toInt(v); ok {
			return LimitTo(count)
		}
	}
	return nil
}

// ParseLimitStrict is ParseLimit reporting malformed input as ErrInvalidLimit
func ParseLimitStrict(raw interface{}) (*Limit, error) {
	if raw == nil {
		return nil, nil
	}
	if list, ok := raw.([]interface{}); ok && len(list) == 0 {
		return nil, nil
	}
	if limit := ParseLimit(raw); limit != nil {
		return limit, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidLimit, raw)
}

// ParseProjection reads "column" or "column:alias"
func ParseProjection(s string) Projection {
	column, alias, _ := strings.Cut(strings.TrimSpace(s), ":")
	return Projection{Column: strings.TrimSpace(column), Alias: strings.TrimSpace(alias)}
}

// ParseProjections reads a comma separated list of projections
func ParseProjections(s string) []Projection {
	var projections []Projection
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		projections = append(projections, ParseProjection(part))
	}
	return projections
}

// toInt reads integers, numbers and numeric strings, fractions are truncated toward zero
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return truncate(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return truncate(f)
		}
	case string:
		n = strings.TrimSpace(n)
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return truncate(f)
		}
	}
	return 0, false
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// normalizeNumber turns json.Number into int64 or float64 so drivers can bind it
func normalizeNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case []interface{}:
		values := make([]interface{}, len(n))
		for idx, item := range n {
			values[idx] = normalizeNumber(item)
		}
		return values
	}
	return v
}
