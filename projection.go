package tablemodel

import (
	"fmt"

	"github.com/go-dbal/tablemodel/clause"
)

// Projection a selected column, Alias renames it in the returned rows
type Projection struct {
	Column string
	Alias  string
}

// Col selects column under its own name
func Col(column string) Projection {
	return Projection{Column: column}
}

// As selects column under alias
func As(column, alias string) Projection {
	return Projection{Column: column, Alias: alias}
}

// Key is the name the column is returned under
func (p Projection) Key() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Column
}

// projections returns the validated projection, every column in schema order when empty
func (m *Model) projections(columns []Projection) ([]Projection, error) {
	if len(columns) == 0 {
		names := m.schema.ColumnNames()
		columns = make([]Projection, len(names))
		for idx, name := range names {
			columns[idx] = Projection{Column: name}
		}
		return columns, nil
	}

	keys := make(map[string]bool, len(columns))
	for _, p := range columns {
		if !m.schema.HasColumn(p.Column) {
			return nil, fmt.Errorf("%w: %q in projection on table %q", ErrUnknownColumn, p.Column, m.schema.Table)
		}
		if keys[p.Key()] {
			return nil, fmt.Errorf("%w: %q on table %q", ErrDuplicatedProjection, p.Key(), m.schema.Table)
		}
		keys[p.Key()] = true
	}
	return columns, nil
}

func selectClause(columns []Projection) clause.Select {
	sel := clause.Select{Columns: make([]clause.Column, len(columns))}
	for idx, p := range columns {
		sel.Columns[idx] = clause.Column{Name: p.Column, Alias: p.Alias}
	}
	return sel
}
