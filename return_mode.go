package tablemodel

import (
	"fmt"
	"strings"
)

// ReturnMode controls how Read converts the values it scanned
type ReturnMode int

const (
	// ReturnRaw returns values as the driver reported them, text or nil
	ReturnRaw ReturnMode = iota
	// ReturnSimple keeps only integer and string columns, converted
	ReturnSimple
	// ReturnCoerced converts every column to its native Go type
	ReturnCoerced
)

func (mode ReturnMode) String() string {
	switch mode {
	case ReturnRaw:
		return "raw"
	case ReturnSimple:
		return "simple"
	case ReturnCoerced:
		return "coerced"
	}
	return fmt.Sprintf("ReturnMode(%d)", int(mode))
}

// ParseReturnMode parses raw, simple or coerced, empty means raw
func ParseReturnMode(s string) (ReturnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return ReturnRaw, nil
	case "simple":
		return ReturnSimple, nil
	case "coerced":
		return ReturnCoerced, nil
	}
	return ReturnRaw, fmt.Errorf("%w: %q", ErrInvalidReturnMode, s)
}
