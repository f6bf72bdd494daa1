package clause

// Select select attrs when querying
type Select struct {
	Distinct bool
	Columns  []Column
}

func (s Select) Name() string {
	return "SELECT"
}

func (s Select) Build(builder Builder) {
	if len(s.Columns) > 0 {
		if s.Distinct {
			builder.WriteString("DISTINCT ")
		}

		for idx, column := range s.Columns {
			if idx > 0 {
				builder.WriteByte(',')
			}
			builder.WriteQuoted(column)
		}
	} else {
		builder.WriteByte('*')
	}
}

func (s Select) MergeClause(clause *Clause) {
	if v, ok := clause.Expression.(Select); ok {
		columns := make([]Column, 0, len(v.Columns)+len(s.Columns))
		columns = append(columns, v.Columns...)
		s.Columns = append(columns, s.Columns...)
		s.Distinct = s.Distinct || v.Distinct
	}
	clause.Expression = s
}
