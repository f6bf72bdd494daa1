package tablemodel

import (
	"fmt"
	"strings"

	"github.com/go-dbal/tablemodel/clause"
)

// Direction sort direction of an Order
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Order one ORDER BY entry, an empty Direction sorts ascending
type Order struct {
	Column    string
	Direction Direction
}

// Asc orders by column ascending
func Asc(column string) Order {
	return Order{Column: column, Direction: Ascending}
}

// Desc orders by column descending
func Desc(column string) Order {
	return Order{Column: column, Direction: Descending}
}

// normalize upper-cases the direction, ASC when empty
func (o Order) normalize() (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(string(o.Direction)))); d {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q for column %q, expected ASC or DESC", ErrInvalidDirection, o.Direction, o.Column)
	}
}

func (m *Model) orderClause(orders []Order) (clause.OrderBy, error) {
	orderBy := clause.OrderBy{Columns: make([]clause.OrderByColumn, 0, len(orders))}
	for _, o := range orders {
		if !m.schema.HasColumn(o.Column) {
			return clause.OrderBy{}, fmt.Errorf("%w: %q in order on table %q", ErrUnknownColumn, o.Column, m.schema.Table)
		}

		direction, err := o.normalize()
		if err != nil {
			return clause.OrderBy{}, err
		}

		orderBy.Columns = append(orderBy.Columns, clause.OrderByColumn{
			Column: clause.Column{Name: o.Column},
			Desc:   direction == Descending,
		})
	}
	return orderBy, nil
}
