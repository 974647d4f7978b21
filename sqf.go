package sqf

/*
Short for "expression". Defines an arbitrary SQL expression. The method appends
arbitrary SQL text. In both the input and output, the arguments must correspond
to the parameters in the SQL text. This package always generates Postgres-style
ordinal parameters such as "$1", renumerating them as necessary. Use
`Dialect.Reify` to convert them into other placeholder styles.

This method is allowed to panic. Use `Catch` to convert expression-encoding
panics into errors.

`Frag`, `Query` and every `Expression` implement this interface.
*/
type Expr interface {
	AppendExpr([]byte, []any) ([]byte, []any)
}

/*
Appends a text repesentation. Sometimes allows better efficiency than
`fmt.Stringer`. Implemented by most types in this package, for debug purposes;
arguments, if any, are discarded.
*/
type Appender interface {
	Append([]byte) []byte
}
