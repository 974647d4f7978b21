package sqf

import (
	"database/sql"
	r "reflect"
	"sync"
	"time"
	"unsafe"

	"github.com/mitranim/refut"
)

const (
	ordinalParamPrefix = '$'
	quoteDouble        = '"'
)

// Bytes after which a following token needs no separating space.
func isOpenDelim(val byte) bool {
	switch val {
	case ' ', '\t', '\v', '\r', '\n', '(', '[', '{', '.':
		return true
	}
	return false
}

// Bytes before which a preceding token needs no separating space.
func isCloseDelim(val byte) bool {
	switch val {
	case ' ', '\t', '\v', '\r', '\n', ')', ']', '}', ',':
		return true
	}
	return false
}

func endsWithDelim(text []byte) bool {
	return len(text) == 0 || isOpenDelim(text[len(text)-1])
}

func startsWithDelim(text string) bool {
	return len(text) == 0 || isCloseDelim(text[0])
}

func maybeAppendSpace(text []byte) []byte {
	if endsWithDelim(text) {
		return text
	}
	return append(text, ' ')
}

func maybeAppendSpaceBefore(text []byte, suffix string) []byte {
	if endsWithDelim(text) || startsWithDelim(suffix) {
		return text
	}
	return append(text, ' ')
}

func appendMaybeSpaced(text []byte, suffix string) []byte {
	return append(maybeAppendSpaceBefore(text, suffix), suffix...)
}

// Per-type memo used for struct column lists. Concurrent misses may compute
// the same value more than once; the results are equal.
type typeCache[Val any] struct {
	vals sync.Map
	fun  func(r.Type) Val
}

func cacheOf[Val any](fun func(r.Type) Val) *typeCache[Val] {
	return &typeCache[Val]{fun: fun}
}

func (self *typeCache[Val]) Get(typ r.Type) Val {
	if val, ok := self.vals.Load(typ); ok {
		return val.(Val)
	}
	val := self.fun(typ)
	self.vals.Store(typ, val)
	return val
}

/*
Reinterprets a byte slice as a string without copying. The bytes must not be
modified afterwards.
*/
func bytesToMutableString(bytes []byte) string {
	return unsafe.String(unsafe.SliceData(bytes), len(bytes))
}

// Caps the capacity at the length, forcing the next `append` to reallocate.
func clip[A any](src []A) []A { return src[:len(src):len(src)] }

func exprAppend[A Expr](expr A, text []byte) []byte {
	text, _ = expr.AppendExpr(text, nil)
	return text
}

func exprString[A Expr](expr A) string {
	return bytesToMutableString(exprAppend(expr, nil))
}

func typeName(typ r.Type) string {
	if typ == nil {
		return `nil`
	}
	return typ.String()
}

var (
	typeTime       = r.TypeOf((*time.Time)(nil)).Elem()
	typeSqlScanner = r.TypeOf((*sql.Scanner)(nil)).Elem()
)

// Structs that scan as a single value, such as `time.Time`, are not expanded
// into columns.
func isStructType(typ r.Type) bool {
	if typ == nil || typ.Kind() != r.Struct {
		return false
	}
	return typ != typeTime && !r.PointerTo(typ).Implements(typeSqlScanner)
}

// Column name from the "db" tag. "-" and empty names are ignored.
func fieldDbName(field r.StructField) string {
	return refut.TagIdent(field.Tag.Get(`db`))
}
