package sqf

import (
	"strings"

	"github.com/mitranim/sqlp"
)

/*
Short for "fragment". Rendered SQL text with Postgres-style ordinal
placeholders "$1".."$N", where "$K" refers to `.Args[K-1]`. This is the unit
every construct in this package reduces to.

Frags are immutable by convention: constructors in this package never share
their args slice with the caller, and methods never mutate the receiver. A frag
may be embedded into any number of other frags and queries.

When appended to a buffer that already has args, the placeholders of the frag
are renumerated, offsetting them by the previous argument count, and the args of
the frag are appended at that point:

	sqf.Frag{Text: `a = $1`, Args: []any{10}}.AppendExpr([]byte(`b = $1`), []any{20})
	// text: `b = $1 a = $2`
	// args: []any{20, 10}
*/
type Frag struct {
	Text string
	Args []any
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Frag) AppendExpr(text []byte, args []any) ([]byte, []any) {
	if self.IsEmpty() {
		return text, args
	}
	text = maybeAppendSpaceBefore(text, self.Text)
	return self.appendInline(text, args)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Frag) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement `fmt.Stringer` for debug purposes.
func (self Frag) String() string { return self.Text }

// Shortcut for `self.Text, self.Args`, matching `Bui.Reify`.
func (self Frag) Reify() (string, []any) { return self.Text, self.Args }

// True if the frag has neither text nor args.
func (self Frag) IsEmpty() bool { return self.Text == `` && len(self.Args) == 0 }

/*
Appends the text verbatim, without spacing, renumerating ordinal parameters
and splicing in the args. Panics with `ErrOrdinalOutOfBounds` if a placeholder
has no corresponding argument.
*/
func (self Frag) appendInline(text []byte, args []any) ([]byte, []any) {
	if strings.IndexByte(self.Text, ordinalParamPrefix) < 0 {
		return append(text, self.Text...), append(args, self.Args...)
	}

	offset := OrdinalParam(len(args))

	walkNodes(`inlining fragment`, self.Text, func(node sqlp.Node) {
		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			ord := ordinalIn(`inlining fragment`, node, len(self.Args))
			text = (ord + offset).Append(text)
		default:
			text = appendNode(text, node)
		}
	})

	return text, append(args, self.Args...)
}
