package sqf

import (
	"fmt"
	r "reflect"
	"strings"

	"github.com/mitranim/refut"
)

/*
Converts an arbitrary value into an `Expression`:

	* `string` and `Column` -> `Column`
	* `Frag` and `Raw` -> `Raw`
	* `Query` -> `Raw` of the parenthesized sub-query
	* slice or array (other than bytes) -> `Tuple`, recursively; empty -> "()"
	* `Tuple`, `Wrapper` -> as-is
	* any other `Expr` -> `Raw` of its rendering

Anything else is rejected with `ErrInvalidExpressionArgument`. This includes
nil, nil pointers, and values that render as blank text, such as "" or an
empty `Frag`.
Clause methods and wrapper constructors use the same rules but panic instead
of returning the error.
*/
func Normalize(val any) (out Expression, err error) {
	defer rec(&err)
	out = normalizeOne(`Normalize`, 0, val)
	return
}

func normalizeArgs(while string, vals []any) []Expression {
	if len(vals) == 0 {
		return nil
	}
	out := make([]Expression, len(vals))
	for ind, val := range vals {
		out[ind] = normalizeOne(while, ind, val)
	}
	return out
}

func normalizeOne(while string, ind int, val any) Expression {
	out, path, ok := normalizeValue(val)
	if ok {
		return out
	}
	panic(errInvalidArg(while, ind, path, elemAt(val, path)))
}

/*
On failure, returns the path of element indexes leading from the input to the
offending value. The path is empty when the input itself is invalid.
*/
func normalizeValue(val any) (Expression, []int, bool) {
	switch val := val.(type) {
	case nil:
		return nil, nil, false
	case Column, Raw, Tuple, Wrapper:
		out := val.(Expression)
		return out, nil, !isBlankExpression(out)
	case string:
		return Column(val), nil, val != ``
	case Frag:
		return Raw(val), nil, !isBlankExpression(Raw(val))
	case Query:
		return Raw(val.subFrag()), nil, true
	case []string:
		out := make(Tuple, len(val))
		for ind, val := range val {
			out[ind] = Column(val)
		}
		return out, nil, true
	case []any:
		return normalizeList(len(val), func(ind int) any { return val[ind] })
	}

	rval := r.ValueOf(val)
	switch rval.Kind() {
	case r.Slice, r.Array:
		if rval.Type().Elem().Kind() == r.Uint8 {
			return nil, nil, false
		}
		return normalizeList(rval.Len(), func(ind int) any { return rval.Index(ind).Interface() })
	}

	if refut.IsRvalNil(rval) {
		return nil, nil, false
	}

	impl, _ := val.(Expr)
	if impl != nil {
		var bui Bui
		bui.Expr(impl)
		out := Raw(bui.Frag())
		return out, nil, !isBlankExpression(out)
	}
	return nil, nil, false
}

// Expressions that would render as nothing, leaving a dangling comma.
func isBlankExpression(val Expression) bool {
	switch val := val.(type) {
	case nil:
		return true
	case Column:
		return val == ``
	case Raw:
		return strings.TrimSpace(val.Text) == ``
	}
	return false
}

func normalizeList(size int, get func(int) any) (Expression, []int, bool) {
	out := make(Tuple, size)
	for ind := range out {
		val, path, ok := normalizeValue(get(ind))
		if !ok {
			return nil, append([]int{ind}, path...), false
		}
		out[ind] = val
	}
	return out, nil, true
}

func elemAt(val any, path []int) any {
	for _, ind := range path {
		val = r.ValueOf(val).Index(ind).Interface()
	}
	return val
}

func errInvalidArg(while string, ind int, path []int, val any) Err {
	var buf strings.Builder
	for _, ind := range path {
		_, _ = fmt.Fprintf(&buf, `[%v]`, ind)
	}

	err := ErrInvalidExpressionArgument.while(fmt.Sprintf(
		`normalizing argument at index %v of %v`, ind, while,
	))

	if len(path) > 0 {
		return err.becausef(
			`unsupported value %#v of type %v at element %v; expected string, Column, Frag, Raw, Query, slice, array or Expr`,
			val, typeName(r.TypeOf(val)), buf.String(),
		)
	}
	return err.becausef(
		`unsupported value %#v of type %v; expected string, Column, Frag, Raw, Query, slice, array or Expr`,
		val, typeName(r.TypeOf(val)),
	)
}
