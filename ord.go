package sqf

import (
	"regexp"
	"strings"
)

const (
	DirNone Dir = 0
	DirAsc  Dir = 1
	DirDesc Dir = 2
)

// Short for "direction". Enum for ordering direction: none, "asc", "desc".
type Dir byte

// Implement `fmt.Stringer` for debug purposes.
func (self Dir) String() string {
	switch self {
	default:
		return ``
	case DirAsc:
		return `asc`
	case DirDesc:
		return `desc`
	}
}

// Parses from a string, which must be either empty, "asc" or "desc", in any
// case.
func (self *Dir) Parse(src string) error {
	switch strings.ToLower(src) {
	case ``:
		*self = DirNone
		return nil
	case `asc`:
		*self = DirAsc
		return nil
	case `desc`:
		*self = DirDesc
		return nil
	default:
		return ErrInvalidInput.while(`parsing order direction`).becausef(
			`unrecognized direction %q`, src,
		)
	}
}

// Implement `encoding.TextMarshaler`.
func (self Dir) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

// Implement `encoding.TextUnmarshaler`.
func (self *Dir) UnmarshalText(src []byte) error {
	return self.Parse(string(src))
}

// Implement `fmt.GoStringer` for debug purposes. Returns valid Go code
// representing this value.
func (self Dir) GoString() string {
	switch self {
	default:
		return `sqf.DirNone`
	case DirAsc:
		return `sqf.DirAsc`
	case DirDesc:
		return `sqf.DirDesc`
	}
}

const (
	NullsNone  Nulls = 0
	NullsFirst Nulls = 1
	NullsLast  Nulls = 2
)

// Enum for nulls handling in ordering: none, "nulls first", "nulls last".
type Nulls byte

// Implement `fmt.Stringer` for debug purposes.
func (self Nulls) String() string {
	switch self {
	case NullsFirst:
		return `nulls first`
	case NullsLast:
		return `nulls last`
	default:
		return ``
	}
}

// Parses from a string, which must be either empty, "first" or "last", in any
// case.
func (self *Nulls) Parse(src string) error {
	switch strings.ToLower(src) {
	case ``:
		*self = NullsNone
		return nil
	case `first`:
		*self = NullsFirst
		return nil
	case `last`:
		*self = NullsLast
		return nil
	default:
		return ErrInvalidInput.while(`parsing nulls ordering`).becausef(
			`unrecognized nulls ordering %q`, src,
		)
	}
}

// Implement `fmt.GoStringer` for debug purposes. Returns valid Go code
// representing this value.
func (self Nulls) GoString() string {
	switch self {
	case NullsFirst:
		return `sqf.NullsFirst`
	case NullsLast:
		return `sqf.NullsLast`
	default:
		return `sqf.NullsNone`
	}
}

/*
Short for "ordering". One element of an "order by" clause: an expression
followed by an optional direction and nulls ordering. Usually created via `Asc`
or `Desc`:

	sqf.From(`person`).OrderBy(sqf.Desc(`age`).NullsLast(), `name`)
	// select * from person order by age desc nulls last, name
*/
type Ord struct {
	By    Expression
	Dir   Dir
	Nulls Nulls
}

// Ascending ordering by the given value, normalized like a clause argument.
func Asc(val any) Ord { return Ord{By: normalizeOne(`Asc`, 0, val), Dir: DirAsc} }

// Descending ordering by the given value, normalized like a clause argument.
func Desc(val any) Ord { return Ord{By: normalizeOne(`Desc`, 0, val), Dir: DirDesc} }

// Returns a copy with "nulls first".
func (self Ord) NullsFirst() Ord {
	self.Nulls = NullsFirst
	return self
}

// Returns a copy with "nulls last".
func (self Ord) NullsLast() Ord {
	self.Nulls = NullsLast
	return self
}

// True if there's nothing to order by.
func (self Ord) IsEmpty() bool { return self.By == nil }

// Implement the `Expr` interface, making this a sub-expression.
func (self Ord) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{Text: text, Args: args}
	bui.Ord(self)
	return bui.Get()
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Ord) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Ord) String() string { return exprString(self) }

// Appends an ordering. Direction and nulls are treated as keywords.
func (self *Bui) Ord(val Ord) {
	if val.IsEmpty() {
		return
	}
	self.Expression(val.By)
	if val.Dir != DirNone {
		self.Keyword(val.Dir.String())
	}
	if val.Nulls != NullsNone {
		self.Keyword(val.Nulls.String())
	}
}

var ordReg = regexp.MustCompile(
	`^\s*((?:\w+\.)*\w+)(?i)(?:\s+(asc|desc))?(?:\s+nulls\s+(first|last))?\s*$`,
)

/*
Parses an ordering from client input such as "name", "age desc" or
"person.age asc nulls last". Only dotted identifiers are allowed as the
ordering target, which makes this safe to use with untrusted input. Returns
`ErrInvalidInput` on mismatch.
*/
func ParseOrd(src string) (Ord, error) {
	match := ordReg.FindStringSubmatch(src)
	if match == nil {
		return Ord{}, ErrInvalidInput.while(`parsing ordering`).becausef(
			`%q doesn't match the expected format "<ident> [asc|desc] [nulls first|last]"`, src,
		)
	}

	out := Ord{By: Column(match[1])}
	if err := out.Dir.Parse(match[2]); err != nil {
		return Ord{}, err
	}
	if err := out.Nulls.Parse(match[3]); err != nil {
		return Ord{}, err
	}
	return out, nil
}
