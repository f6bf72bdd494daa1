package clause_test

import (
	"fmt"
	"testing"

	"github.com/go-dbal/tablemodel/clause"
)

func TestFrom(t *testing.T) {
	results := []struct {
		Clauses []clause.Interface
		Result  string
		Vars    []interface{}
	}{
		{
			[]clause.Interface{clause.Select{}, clause.From{}},
			"SELECT * FROM `users`", nil,
		},
		{
			[]clause.Interface{clause.Select{}, clause.From{Tables: []clause.Table{{Name: "users"}, {Name: "articles", Alias: "a"}}}},
			"SELECT * FROM `users`,`articles` AS `a`", nil,
		},
		{
			[]clause.Interface{clause.Select{}, clause.From{Tables: []clause.Table{{Name: "articles"}}}, clause.From{}},
			"SELECT * FROM `users`", nil,
		},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			checkBuildClauses(t, result.Clauses, result.Result, result.Vars)
		})
	}
}
