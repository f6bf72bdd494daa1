package clause

// Expression expression interface
type Expression interface {
	Build(builder Builder)
}

// NegationExpressionBuilder negation expression builder
type NegationExpressionBuilder interface {
	NegationBuild(builder Builder)
}

// Column quote with name
type Column struct {
	Table string
	Name  string
	Alias string
	Raw   bool
}

// Table quote with name
type Table struct {
	Name  string
	Alias string
	Raw   bool
}

// ParamType describes how a set of values is bound for IN / NOT IN.
type ParamType int

const (
	// ParamDefault binds every element as given
	ParamDefault ParamType = iota
	// ParamIntArray binds the elements as an integer array
	ParamIntArray
	// ParamStrArray binds the elements as a string array
	ParamStrArray
)

func (t ParamType) String() string {
	switch t {
	case ParamIntArray:
		return "int_array"
	case ParamStrArray:
		return "str_array"
	default:
		return "default"
	}
}

// Expr raw expression, each `?` in SQL is replaced by the next var
type Expr struct {
	SQL  string
	Vars []interface{}
}

// Build build raw expression
func (expr Expr) Build(builder Builder) {
	var idx int

	for _, v := range []byte(expr.SQL) {
		if v == '?' && len(expr.Vars) > idx {
			builder.AddVar(builder, expr.Vars[idx])
			idx++
		} else {
			builder.WriteByte(v)
		}
	}
}

// NegationBuild wraps the expression with NOT (...)
func (expr Expr) NegationBuild(builder Builder) {
	builder.WriteString("NOT (")
	expr.Build(builder)
	builder.WriteByte(')')
}
