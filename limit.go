package tablemodel

import "github.com/go-dbal/tablemodel/clause"

// Limit bounds the rows read, a nil *Limit reads everything.
// Values are bound as they are, the database rejects what it cannot use.
type Limit struct {
	Offset *int
	Count  int
}

// LimitTo reads at most count rows
func LimitTo(count int) *Limit {
	return &Limit{Count: count}
}

// Page skips offset rows then reads at most count rows
func Page(offset, count int) *Limit {
	return &Limit{Offset: &offset, Count: count}
}

func (l *Limit) clause() clause.Limit {
	count := l.Count
	limit := clause.Limit{Limit: &count}
	if l.Offset != nil {
		offset := *l.Offset
		limit.Offset = &offset
	}
	return limit
}
