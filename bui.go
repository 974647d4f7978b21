package sqf

import "strings"

/*
Short for "builder". Accumulates SQL text and arguments. Every `Expr` in this
package renders through it, and callers implementing their own `Expr` may use
it too.

`.Case` applies to keywords appended via `(*Bui).Keyword`, never to
caller-supplied text.
*/
type Bui struct {
	Text []byte
	Args []any
	Case KeywordCase
}

// Text and args, in the shape taken by `Expr.AppendExpr`.
func (self Bui) Get() ([]byte, []any) { return self.Text, self.Args }

/*
Stores the outputs of an `AppendExpr` call:

	bui.Set(expr.AppendExpr(bui.Get()))
*/
func (self *Bui) Set(text []byte, args []any) {
	self.Text, self.Args = text, args
}

// Text as a string, plus args. The shape expected by `database/sql`.
func (self Bui) Reify() (string, []any) { return self.String(), self.Args }

// Text as a string, without copying.
func (self Bui) String() string { return bytesToMutableString(self.Text) }

// Copies the text into a standalone `Frag`.
func (self Bui) Frag() Frag { return Frag{Text: string(self.Text), Args: self.Args} }

// Appends the string, preceded by a space unless either side is delimited.
func (self *Bui) Str(val string) {
	self.Text = appendMaybeSpaced(self.Text, val)
}

// Like `(*Bui).Str`, converting the keyword to the configured `.Case`.
func (self *Bui) Keyword(val string) {
	if self.Case == KeywordCaseUpper {
		val = strings.ToUpper(val)
	}
	self.Str(val)
}

/*
Appends an expression. Nil is a nop. Expressions and orderings pick up the
keyword case of this builder; other implementations append themselves.
*/
func (self *Bui) Expr(val Expr) {
	switch impl := val.(type) {
	case nil:
	case Expression:
		self.Expression(impl)
	case Ord:
		self.Ord(impl)
	default:
		self.Set(val.AppendExpr(self.Get()))
	}
}

// Appends the exprs with the separator between them.
func (self *Bui) Join(sep string, vals ...Expr) {
	for ind, val := range vals {
		if ind > 0 {
			self.Str(sep)
		}
		self.Expr(val)
	}
}

/*
Adds an argument without touching the text, returning the ordinal that refers
to it. The caller is responsible for appending the ordinal.
*/
func (self *Bui) OrphanArg(val any) OrdinalParam {
	self.Args = append(self.Args, val)
	return OrdinalParam(len(self.Args))
}

// Adds an argument and appends its ordinal, such as "$3".
func (self *Bui) Arg(val any) {
	ord := self.OrphanArg(val)
	self.Text = ord.Append(maybeAppendSpace(self.Text))
}

// Appends an `Expr` as an expression and anything else as an argument.
func (self *Bui) Any(val any) {
	if impl, _ := val.(Expr); impl != nil {
		self.Expr(impl)
		return
	}
	self.Arg(val)
}
