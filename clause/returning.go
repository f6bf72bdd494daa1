package clause

// Returning returning clause, used to read back generated keys
type Returning struct {
	Columns []Column
}

// Name returning clause name
func (returning Returning) Name() string {
	return "RETURNING"
}

// Build build returning clause
func (returning Returning) Build(builder Builder) {
	if len(returning.Columns) == 0 {
		builder.WriteByte('*')
		return
	}

	for idx, column := range returning.Columns {
		if idx > 0 {
			builder.WriteByte(',')
		}

		builder.WriteQuoted(column)
	}
}

// MergeClause merge returning clauses
func (returning Returning) MergeClause(clause *Clause) {
	if v, ok := clause.Expression.(Returning); ok && len(returning.Columns) > 0 {
		columns := make([]Column, 0, len(v.Columns)+len(returning.Columns))
		columns = append(columns, v.Columns...)
		returning.Columns = append(columns, returning.Columns...)
	}

	clause.Expression = returning
}
