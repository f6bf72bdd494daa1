package logger_test

import (
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/jinzhu/now"
	"github.com/lib/pq"

	"github.com/go-dbal/tablemodel/logger"
)

type JSON json.RawMessage

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.RawMessage(j).MarshalJSON()
}

func TestExplainSQL(t *testing.T) {
	type role string
	var (
		tt     = now.MustParse("2020-02-23 11:10:10")
		myrole = role("admin")
		js     = JSON(`{"name":"test"}`)
		nilJS  *JSON
	)

	results := []struct {
		SQL           string
		NumericRegexp *regexp.Regexp
		Vars          []interface{}
		Result        string
	}{
		{
			SQL:    "INSERT INTO `users` (`name`,`age`,`height`,`active`,`bytes`,`created_at`,`deleted_at`,`role`) VALUES (?,?,?,?,?,?,?,?)",
			Vars:   []interface{}{"jinzhu", 1, 999.99, true, []byte("12345"), tt, nil, myrole},
			Result: "INSERT INTO `users` (`name`,`age`,`height`,`active`,`bytes`,`created_at`,`deleted_at`,`role`) VALUES (\"jinzhu\",1,999.99,true,\"12345\",\"2020-02-23 11:10:10\",NULL,\"admin\")",
		},
		{
			SQL:    "SELECT * FROM `users` WHERE `name` = ? AND `age` > ?",
			Vars:   []interface{}{"who?", int64(3)},
			Result: "SELECT * FROM `users` WHERE `name` = \"who?\" AND `age` > 3",
		},
		{
			SQL:    "UPDATE `users` SET `email`=? WHERE `id` = ?",
			Vars:   []interface{}{`w@g."com`, uint(2)},
			Result: "UPDATE `users` SET `email`=\"w@g.\"\"com\" WHERE `id` = 2",
		},
		{
			SQL:           `SELECT * FROM "users" WHERE "id" = ANY($2) AND "name" = $1`,
			NumericRegexp: regexp.MustCompile(`\$(\d+)`),
			Vars:          []interface{}{"jinzhu", pq.Int64Array{1, 2, 3}},
			Result:        `SELECT * FROM "users" WHERE "id" = ANY('{1,2,3}') AND "name" = 'jinzhu'`,
		},
		{
			SQL:    "INSERT INTO `docs` (`body`,`extra`) VALUES (?,?)",
			Vars:   []interface{}{js, nilJS},
			Result: "INSERT INTO `docs` (`body`,`extra`) VALUES (\"{\"\"name\"\":\"\"test\"\"}\",NULL)",
		},
		{
			SQL:    "SELECT * FROM `users` LIMIT ?",
			Vars:   []interface{}{[]byte{0x00, 0x01}},
			Result: "SELECT * FROM `users` LIMIT \"<binary>\"",
		},
	}

	for idx, r := range results {
		escaper := `"`
		if r.NumericRegexp != nil {
			escaper = `'`
		}
		if result := logger.ExplainSQL(r.SQL, r.NumericRegexp, escaper, r.Vars...); result != r.Result {
			t.Errorf("Explain SQL #%v expects %v, but got %v", idx, r.Result, result)
		}
	}
}
