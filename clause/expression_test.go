package clause_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/clause"
)

func TestExpr(t *testing.T) {
	results := []struct {
		SQL    string
		Result string
		Vars   []interface{}
	}{{
		SQL:    "create table ? (? ?, ? ?)",
		Vars:   []interface{}{clause.Table{Name: "users"}, clause.Column{Name: "id"}, clause.Expr{SQL: "int"}, clause.Column{Name: "name"}, clause.Expr{SQL: "text"}},
		Result: "create table `users` (`id` int, `name` text)",
	}, {
		SQL:    "? IN ?",
		Vars:   []interface{}{clause.Column{Table: clause.CurrentTable, Name: "id"}, []interface{}{1, 2}},
		Result: "`users`.`id` IN (?,?)",
	}, {
		SQL:    "? IN ?",
		Vars:   []interface{}{clause.Column{Name: "id"}, []interface{}{}},
		Result: "`id` IN (NULL)",
	}, {
		SQL:    "SELECT ? FROM ?",
		Vars:   []interface{}{clause.Column{Name: "na`me", Alias: "n"}, clause.Table{Name: clause.CurrentTable, Alias: "u"}},
		Result: "SELECT `na``me` AS `n` FROM `users` AS `u`",
	}, {
		SQL:    "SELECT ? FROM ?",
		Vars:   []interface{}{clause.Column{Name: "count(*)", Raw: true}, clause.Table{Name: "users"}},
		Result: "SELECT count(*) FROM `users`",
	}}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			stmt := tablemodel.NewStatement(context.Background(), db, "users")
			clause.Expr{SQL: result.SQL, Vars: result.Vars}.Build(stmt)
			if stmt.SQL.String() != result.Result {
				t.Errorf("generated SQL is not equal, expects %v, but got %v", result.Result, stmt.SQL.String())
			}
		})
	}
}

func TestParamType(t *testing.T) {
	for typ, expected := range map[clause.ParamType]string{
		clause.ParamDefault:  "default",
		clause.ParamIntArray: "int_array",
		clause.ParamStrArray: "str_array",
	} {
		if typ.String() != expected {
			t.Errorf("%d: expects %v, got %v", typ, expected, typ.String())
		}
	}
}
