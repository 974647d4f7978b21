package sqf

/*
Normalized form of any clause argument. This is a closed union with exactly
four variants: `Column`, `Raw`, `Tuple` and `Wrapper`. Values of other shapes are
converted by `Normalize`. Because the set of variants is closed, rendering is an
exhaustive switch without further type probing.

Expressions are immutable once constructed and may be shared freely.
*/
type Expression interface {
	Expr
	expression()
}

/*
Column name or any other verbatim SQL token. Rendered exactly as given: no
quoting or escaping is performed. Use `Ident` for quoted identifiers.
*/
type Column string

func (Column) expression() {}

// Implement the `Expr` interface, making this a sub-expression.
func (self Column) AppendExpr(text []byte, args []any) ([]byte, []any) {
	return appendExpression(self, text, args)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Column) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Column) String() string { return string(self) }

/*
Embedded fragment. Its text is inlined and its args are spliced into the
surrounding argument list at the point of inlining.
*/
type Raw Frag

func (Raw) expression() {}

// Implement the `Expr` interface, making this a sub-expression.
func (self Raw) AppendExpr(text []byte, args []any) ([]byte, []any) {
	return appendExpression(self, text, args)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Raw) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Raw) String() string { return self.Text }

/*
Parenthesized, comma-separated list. Produced by normalizing a slice or array.
An empty tuple renders as "()".
*/
type Tuple []Expression

func (Tuple) expression() {}

// Implement the `Expr` interface, making this a sub-expression.
func (self Tuple) AppendExpr(text []byte, args []any) ([]byte, []any) {
	return appendExpression(self, text, args)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Tuple) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Tuple) String() string { return exprString(self) }

// Grouping keyword used by `Wrapper`. The text is lower case; `Bui` adjusts it
// according to `KeywordCase`.
type Keyword string

const (
	KeywordRollup       Keyword = `rollup`
	KeywordCube         Keyword = `cube`
	KeywordGroupingSets Keyword = `grouping sets`
)

/*
Keyword-prefixed parenthesized group, such as "rollup (a, b)". Produced by
`Rollup`, `Cube` and `GroupingSets`. Items may be any expression, including
other wrappers, with unbounded nesting.
*/
type Wrapper struct {
	Keyword Keyword
	Items   []Expression
}

func (Wrapper) expression() {}

// Implement the `Expr` interface, making this a sub-expression.
func (self Wrapper) AppendExpr(text []byte, args []any) ([]byte, []any) {
	return appendExpression(self, text, args)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Wrapper) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Wrapper) String() string { return exprString(self) }

/*
Creates a "rollup (...)" grouping element. Accepts the same value shapes as
`Query.GroupBy`, including other wrappers. Invalid values cause a panic with
`ErrInvalidExpressionArgument` at this call.
*/
func Rollup(vals ...any) Wrapper {
	return Wrapper{KeywordRollup, normalizeArgs(`Rollup`, vals)}
}

/*
Creates a "cube (...)" grouping element. Accepts the same value shapes as
`Query.GroupBy`, including other wrappers. Invalid values cause a panic with
`ErrInvalidExpressionArgument` at this call.
*/
func Cube(vals ...any) Wrapper {
	return Wrapper{KeywordCube, normalizeArgs(`Cube`, vals)}
}

/*
Creates a "grouping sets (...)" grouping element. Accepts the same value shapes
as `Query.GroupBy`, including other wrappers:

	sqf.GroupingSets(sqf.GroupingSets([]string{}), sqf.GroupingSets([]string{`age`}))
	// grouping sets (grouping sets (()), grouping sets ((age)))
*/
func GroupingSets(vals ...any) Wrapper {
	return Wrapper{KeywordGroupingSets, normalizeArgs(`GroupingSets`, vals)}
}

func appendExpression(val Expression, text []byte, args []any) ([]byte, []any) {
	bui := Bui{Text: text, Args: args}
	bui.Expression(val)
	return bui.Get()
}

/*
Appends an expression, rendering each variant recursively:

	Column  -> name
	Raw     -> text, with args spliced in
	Tuple   -> (a, b), or () when empty
	Wrapper -> keyword (a, b)

Nil is a nop.
*/
func (self *Bui) Expression(val Expression) {
	switch val := val.(type) {
	case nil:

	case Column:
		self.Str(string(val))

	case Raw:
		self.Set(Frag(val).AppendExpr(self.Get()))

	case Tuple:
		self.Str(`(`)
		self.Expressions(val)
		self.Str(`)`)

	case Wrapper:
		self.Keyword(string(val.Keyword))
		self.Str(`(`)
		self.Expressions(val.Items)
		self.Str(`)`)

	default:
		panic(ErrInternal.while(`rendering expression`).becausef(
			`unrecognized expression variant %T`, val,
		))
	}
}

// Appends the expressions, comma-separated. Blank entries, which can only
// come from hand-built lists, are skipped.
func (self *Bui) Expressions(vals []Expression) {
	var count int
	for _, val := range vals {
		if isBlankExpression(val) {
			continue
		}
		if count > 0 {
			self.Str(`,`)
		}
		self.Expression(val)
		count++
	}
}
