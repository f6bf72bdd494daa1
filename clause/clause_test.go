package clause_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/utils/tests"
)

var db, _ = tablemodel.Open(tests.DummyDialector{}, nil)

func checkBuildClauses(t *testing.T, clauses []clause.Interface, result string, vars []interface{}) {
	var (
		buildNames    []string
		buildNamesMap = map[string]bool{}
		stmt          = tablemodel.NewStatement(context.Background(), db, "users")
	)

	for _, c := range clauses {
		if _, ok := buildNamesMap[c.Name()]; !ok {
			buildNames = append(buildNames, c.Name())
			buildNamesMap[c.Name()] = true
		}

		stmt.AddClause(c)
	}

	stmt.Build(buildNames...)

	if strings.TrimSpace(stmt.SQL.String()) != result {
		t.Errorf("SQL expects %v got %v", result, stmt.SQL.String())
	}

	if !reflect.DeepEqual(stmt.Vars, vars) {
		t.Errorf("Vars expects %+v got %v", vars, stmt.Vars)
	}
}

func TestClauses(t *testing.T) {
	checkBuildClauses(t,
		[]clause.Interface{clause.Select{}, clause.From{}, clause.Where{Exprs: []clause.Expression{clause.Eq{Column: clause.Column{Name: "id"}, Value: "1"}}}},
		"SELECT * FROM `users` WHERE `id` = ?", []interface{}{"1"},
	)
}
