package clause

// Limit limit clause. Values are bound as they are; bounds are left to the database.
type Limit struct {
	Limit  *int
	Offset *int
}

// Name where clause name
func (limit Limit) Name() string {
	return "LIMIT"
}

// Build build limit clause
func (limit Limit) Build(builder Builder) {
	if limit.Limit != nil {
		builder.WriteString("LIMIT ")
		builder.AddVar(builder, *limit.Limit)
	}

	if limit.Offset != nil {
		if limit.Limit != nil {
			builder.WriteByte(' ')
		}
		builder.WriteString("OFFSET ")
		builder.AddVar(builder, *limit.Offset)
	}
}

// MergeClause merge limit by clause
func (limit Limit) MergeClause(clause *Clause) {
	clause.Name = ""

	if v, ok := clause.Expression.(Limit); ok {
		if limit.Limit == nil && v.Limit != nil {
			limit.Limit = v.Limit
		}

		if limit.Offset == nil && v.Offset != nil {
			limit.Offset = v.Offset
		}
	}

	clause.Expression = limit
}
