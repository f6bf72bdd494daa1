package logger

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const tmFmtWithMS = "2006-01-02 15:04:05.999"

func isPrintable(s []byte) bool {
	for _, r := range s {
		if !unicode.IsPrint(rune(r)) {
			return false
		}
	}
	return true
}

// ExplainSQL renders sql with vars inlined, for logging only. numericPlaceholder
// matches positional markers such as $1, nil means vars replace ? in order.
func ExplainSQL(sql string, numericPlaceholder *regexp.Regexp, escaper string, vars ...interface{}) string {
	quote := func(s string) string {
		return escaper + strings.ReplaceAll(s, escaper, escaper+escaper) + escaper
	}

	formatted := make([]string, len(vars))
	for idx, v := range vars {
		if valuer, ok := v.(driver.Valuer); ok {
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
				v = nil
			} else {
				v, _ = valuer.Value()
			}
		}

		switch v := v.(type) {
		case nil:
			formatted[idx] = "NULL"
		case bool:
			formatted[idx] = strconv.FormatBool(v)
		case time.Time:
			formatted[idx] = quote(v.Format(tmFmtWithMS))
		case *time.Time:
			if v == nil {
				formatted[idx] = "NULL"
			} else {
				formatted[idx] = quote(v.Format(tmFmtWithMS))
			}
		case []byte:
			if isPrintable(v) {
				formatted[idx] = quote(string(v))
			} else {
				formatted[idx] = quote("<binary>")
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			formatted[idx] = fmt.Sprintf("%d", v)
		case float32:
			formatted[idx] = strconv.FormatFloat(float64(v), 'f', -1, 32)
		case float64:
			formatted[idx] = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			formatted[idx] = quote(v)
		default:
			rv := reflect.ValueOf(v)
			switch rv.Kind() {
			case reflect.Ptr:
				if rv.IsNil() {
					formatted[idx] = "NULL"
				} else {
					formatted[idx] = ExplainSQL("?", nil, escaper, rv.Elem().Interface())
				}
			case reflect.String:
				formatted[idx] = quote(rv.String())
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				formatted[idx] = strconv.FormatInt(rv.Int(), 10)
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				formatted[idx] = strconv.FormatUint(rv.Uint(), 10)
			case reflect.Bool:
				formatted[idx] = strconv.FormatBool(rv.Bool())
			default:
				formatted[idx] = quote(fmt.Sprint(v))
			}
		}
	}

	if numericPlaceholder == nil {
		var b strings.Builder
		b.Grow(len(sql))
		idx := 0
		for _, r := range sql {
			if r == '?' && idx < len(formatted) {
				b.WriteString(formatted[idx])
				idx++
				continue
			}
			b.WriteRune(r)
		}
		return b.String()
	}

	return numericPlaceholder.ReplaceAllStringFunc(sql, func(m string) string {
		sub := numericPlaceholder.FindStringSubmatch(m)
		if len(sub) < 2 {
			return m
		}
		n, err := strconv.Atoi(sub[1])
		if err != nil || n < 1 || n > len(formatted) {
			return m
		}
		return formatted[n-1]
	})
}
