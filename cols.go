package sqf

import (
	r "reflect"

	"github.com/mitranim/refut"
	"github.com/pkg/errors"
)

/*
Takes a struct and generates a select list of its "db" columns, suitable for
`Query.Select`. Also accepts the following inputs and automatically
dereferences them into a struct type:

	* Struct pointer.
	* Struct slice.
	* Struct slice pointer.

Nil slices and pointers are fine, as long as they carry a struct type. Any other
input causes a panic with `ErrInvalidInput`.

Unlike plain strings given to clause methods, these column names are quoted,
since nested structs produce dotted aliases:

	type Person struct {
		Id      int64 `db:"id"`
		Address struct {
			City string `db:"city"`
		} `db:"address"`
	}

	sqf.From(`person`).Select(sqf.Cols(Person{}))
	// select "id", ("address")."city" as "address.city" from person

Column lists are cached per type.
*/
func Cols(dest any) Frag {
	typ := r.TypeOf(dest)
	if typ != nil {
		typ = refut.RtypeDeref(typ)
		if typ.Kind() == r.Slice {
			typ = refut.RtypeDeref(typ.Elem())
		}
	}

	if !isStructType(typ) {
		panic(ErrInvalidInput.while(`generating struct columns for select clause`).becausef(
			`expected struct, got %v`, typeName(typ),
		))
	}

	return Frag{Text: colsCache.Get(typ)}
}

var colsCache = cacheOf(func(typ r.Type) string {
	return bytesToMutableString(sqlIdent{idents: structTypeSqlIdents(typ)}.appendSelect(nil, nil))
})

func structTypeSqlIdents(typ r.Type) []sqlIdent {
	var idents []sqlIdent

	err := refut.TraverseStructRtype(typ, func(sfield r.StructField, _ []int) error {
		name := fieldDbName(sfield)
		if name == `` {
			return nil
		}

		fieldType := refut.RtypeDeref(sfield.Type)
		if isStructType(fieldType) {
			idents = append(idents, sqlIdent{
				name:   name,
				idents: structTypeSqlIdents(fieldType),
			})
			return nil
		}

		idents = append(idents, sqlIdent{name: name})
		return nil
	})
	if err != nil {
		panic(ErrInvalidInput.while(`generating struct columns for select clause`).because(errors.WithStack(err)))
	}

	return idents
}

type sqlIdent struct {
	name   string
	idents []sqlIdent
}

func (self sqlIdent) appendSelect(buf []byte, path []sqlIdent) []byte {
	/**
	If the ident doesn't have a name, it's just a collection of other idents,
	which are considered to be at the "top level". If the ident has a name, it's
	considered to "contain" the other idents.
	*/
	if len(self.idents) > 0 {
		if self.name != `` {
			path = append(path, self)
		}
		for _, ident := range self.idents {
			buf = ident.appendSelect(buf, path)
		}
		return buf
	}

	if self.name == `` {
		return buf
	}

	if len(buf) > 0 {
		buf = append(buf, `, `...)
	}

	if len(path) == 0 {
		buf = self.appendAlias(buf, nil)
	} else {
		buf = self.appendPath(buf, path)
		buf = append(buf, ` as `...)
		buf = self.appendAlias(buf, path)
	}

	return buf
}

func (self sqlIdent) appendPath(buf []byte, path []sqlIdent) []byte {
	for ind, ident := range path {
		if ind == 0 {
			buf = append(buf, `("`...)
			buf = append(buf, ident.name...)
			buf = append(buf, `")`...)
		} else {
			buf = append(buf, `"`...)
			buf = append(buf, ident.name...)
			buf = append(buf, `"`...)
		}
		buf = append(buf, `.`...)
	}
	buf = append(buf, `"`...)
	buf = append(buf, self.name...)
	buf = append(buf, `"`...)
	return buf
}

func (self sqlIdent) appendAlias(buf []byte, path []sqlIdent) []byte {
	buf = append(buf, `"`...)
	for _, ident := range path {
		buf = append(buf, ident.name...)
		buf = append(buf, `.`...)
	}
	buf = append(buf, self.name...)
	buf = append(buf, `"`...)
	return buf
}
