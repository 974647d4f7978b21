package sqf

import (
	"strconv"

	"github.com/mitranim/sqlp"
	"github.com/pkg/errors"
)

/*
Represents an ordinal parameter such as "$1". Numbering starts at 1; use
`.Index` to convert to a 0-based argument index.
*/
type OrdinalParam int

// Implement the `Expr` interface. Appends the param without an argument;
// requires caution.
func (self OrdinalParam) AppendExpr(text []byte, args []any) ([]byte, []any) {
	return self.Append(text), args
}

// Implement the `Appender` interface.
func (self OrdinalParam) Append(text []byte) []byte {
	text = append(text, ordinalParamPrefix)
	return strconv.AppendInt(text, int64(self), 10)
}

// Implement `fmt.Stringer` for debug purposes.
func (self OrdinalParam) String() string { return bytesToMutableString(self.Append(nil)) }

// Returns the corresponding Go index (starts at zero).
func (self OrdinalParam) Index() int { return int(self) - 1 }

/*
Walks the nodes of SQL text as produced by `sqlp.Tokenizer`. Quoted strings and
comments arrive as single nodes, so placeholders inside them are never seen as
parameters. Malformed text, such as an unterminated quote or comment, panics
with `ErrMalformedTemplate`.
*/
func walkNodes(while, src string, fun func(sqlp.Node)) {
	tokenizer := sqlp.Tokenizer{Source: src}
	for {
		node := nextNode(while, &tokenizer)
		if node == nil {
			return
		}
		fun(node)
	}
}

func nextNode(while string, tokenizer *sqlp.Tokenizer) sqlp.Node {
	defer recMalformed(while)
	return tokenizer.Next()
}

// Must be deferred.
func recMalformed(while string) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err == nil {
		err = errors.Errorf(`%v`, val)
	}
	panic(ErrMalformedTemplate.while(while).because(errors.WithStack(err)))
}

func appendNode(text []byte, node sqlp.Node) []byte {
	node.Append(&text)
	return text
}

/*
Checks the ordinal against the argument count, panicking with
`ErrOrdinalOutOfBounds` on mismatch.
*/
func ordinalIn(while string, node sqlp.NodeOrdinalParam, count int) OrdinalParam {
	ord := OrdinalParam(node)
	if ord.Index() < 0 || ord.Index() >= count {
		panic(ErrOrdinalOutOfBounds.while(while).becausef(
			`ordinal parameter %v exceeds argument count %v`, ord, count,
		))
	}
	return ord
}
