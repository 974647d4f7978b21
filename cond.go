package sqf

import (
	"database/sql/driver"
	r "reflect"
	"sort"

	"github.com/mitranim/refut"
	"github.com/pkg/errors"
)

/*
Normalizes "where", "having" and "on" arguments. Maps with string keys and
structs with "db" tags become `Raw` conditions; everything else follows the
usual rules. `offset` is added to argument indexes in error messages.
*/
func normalizeConds(while string, offset int, vals []any) []Expression {
	if len(vals) == 0 {
		return nil
	}
	out := make([]Expression, len(vals))
	for ind, val := range vals {
		frag, ok := condFrag(val)
		if ok {
			out[ind] = Raw(frag)
		} else {
			out[ind] = normalizeOne(while, ind+offset, val)
		}
	}
	return out
}

func condFrag(val any) (Frag, bool) {
	if val == nil {
		return Frag{}, false
	}
	if _, ok := val.(Expr); ok {
		return Frag{}, false
	}

	rval := r.ValueOf(val)
	if rval.Kind() == r.Map && rval.Type().Key().Kind() == r.String {
		return MapConds(val), true
	}
	if isStructType(refut.RtypeDeref(rval.Type())) {
		return StructConds(val), true
	}
	return Frag{}, false
}

/*
Converts a map with string keys into conditions joined with "and", sorted by
key. Keys are used verbatim as column names. Values that are nil, or nil
`driver.Valuer`s, produce "is null". Expressions are inlined, with sub-queries
parenthesized. Other values become bound parameters:

	sqf.MapConds(map[string]any{`age`: 20, `name`: nil})
	// text: `age = $1 and name is null`
	// args: []any{20}

An empty map produces "true". Panics on inputs other than maps with string
keys.
*/
func MapConds(src any) Frag {
	rval := r.ValueOf(src)
	if rval.Kind() != r.Map || rval.Type().Key().Kind() != r.String {
		panic(ErrInvalidInput.while(`generating map conditions`).becausef(
			`expected map with string keys, got %v`, typeName(r.TypeOf(src)),
		))
	}

	conds := make([]namedValue, 0, rval.Len())
	iter := rval.MapRange()
	for iter.Next() {
		conds = append(conds, namedValue{iter.Key().String(), iter.Value().Interface()})
	}
	sort.Slice(conds, func(one, two int) bool { return conds[one].name < conds[two].name })

	return appendNamedConds(conds)
}

/*
Converts a struct, or a struct pointer, into conditions joined with "and", one
per field with a "db" tag, in field order. Embedded structs are treated as part
of the enclosing struct. A nil pointer produces "true". Nil handling matches
`MapConds`. Panics on non-struct inputs.
*/
func StructConds(src any) Frag {
	var conds []namedValue
	traverseStructDbFields(src, func(name string, val any) {
		conds = append(conds, namedValue{name, val})
	})
	return appendNamedConds(conds)
}

type namedValue struct {
	name string
	val  any
}

func appendNamedConds(conds []namedValue) Frag {
	if len(conds) == 0 {
		return Frag{Text: `true`}
	}

	var bui Bui
	for ind, cond := range conds {
		if ind > 0 {
			bui.Str(`and`)
		}
		bui.Str(cond.name)

		val := try1(normNull(cond.val))
		if val == nil {
			bui.Str(`is null`)
		} else {
			bui.Str(`=`)
			bui.Text = maybeAppendSpace(bui.Text)
			if !appendInlineValue(&bui, val) {
				bui.Arg(val)
			}
		}
	}
	return bui.Frag()
}

/*
Normalizes the value by attempting SQL encoding. Used for detecting nils, which
turn into "is null" conditions.
*/
func normNull(val any) (any, error) {
	valuer, ok := val.(driver.Valuer)
	if ok {
		if refut.IsNil(valuer) {
			return nil, nil
		}

		out, err := valuer.Value()
		if err != nil {
			return nil, ErrInvalidInput.while(`encoding condition value`).because(errors.WithStack(err))
		}
		val = out
	}

	if refut.IsNil(val) {
		return nil, nil
	}
	return val, nil
}

func traverseStructDbFields(src any, fun func(string, any)) {
	rval := r.ValueOf(src)
	if !rval.IsValid() || !isStructType(refut.RtypeDeref(rval.Type())) {
		panic(ErrInvalidInput.while(`traversing struct for DB fields`).becausef(
			`expected struct, got %v`, typeName(r.TypeOf(src)),
		))
	}

	if refut.IsRvalNil(rval) {
		return
	}

	err := refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		name := fieldDbName(sfield)
		if name == `` {
			return nil
		}
		fun(name, rval.Interface())
		return nil
	})
	if err != nil {
		panic(ErrInvalidInput.while(`traversing struct for DB fields`).because(errors.WithStack(err)))
	}
}
