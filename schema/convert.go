package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// ErrInvalidValue raw value can't be converted to the column's logical type
var ErrInvalidValue = errors.New("invalid value")

type converter func(raw string) (interface{}, error)

var converters = map[DataType]converter{
	Integer:  parseInt,
	SmallInt: parseInt,
	BigInt:   parseInt,
	Decimal:  parseFloat,
	Float:    parseFloat,
	Boolean:  parseBool,
	DateTime: parseTime,
	Date:     parseTime,
	Time:     parseTime,
	String:   func(raw string) (interface{}, error) { return raw, nil },
	Text:     func(raw string) (interface{}, error) { return raw, nil },
	Binary:   func(raw string) (interface{}, error) { return []byte(raw), nil },
}

// Convert turns a raw driver value into the native representation of dataType.
// nil stays nil; types without a converter are returned unchanged.
func Convert(raw interface{}, dataType DataType) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}

	fc, ok := converters[dataType]
	if !ok {
		return raw, nil
	}

	var str string
	switch v := raw.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	case time.Time:
		if dataType == DateTime || dataType == Date || dataType == Time {
			return v, nil
		}
		str = v.Format(time.RFC3339Nano)
	default:
		str = fmt.Sprint(v)
	}

	value, err := fc(str)
	if err != nil {
		return nil, fmt.Errorf("%w: %q as %s", ErrInvalidValue, str, dataType)
	}
	return value, nil
}

func parseInt(raw string) (interface{}, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func parseFloat(raw string) (interface{}, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func parseBool(raw string) (interface{}, error) {
	return strconv.ParseBool(strings.TrimSpace(raw))
}

func parseTime(raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	return now.Parse(raw)
}
