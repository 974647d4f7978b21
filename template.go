package sqf

import (
	"strings"

	"github.com/mitranim/sqlp"
)

// Marker used by `T` to split text into template segments.
const templateMarker = `{}`

/*
Renders a "tagged template": literal text segments interleaved with
interpolated values. There must be exactly one fewer value than segments,
otherwise this panics with `ErrMalformedTemplate`.

Segments are copied verbatim. Values are handled as follows:

	* `Frag` and `Raw` are inlined, renumerating their placeholders and
	  splicing in their args.
	* `Query` is inlined as a parenthesized sub-query.
	* Any other `Expr`, including `Column`, `Tuple` and `Wrapper`, is rendered
	  and inlined.
	* Anything else, including strings, becomes a bound parameter "$N".

Example:

	sqf.Txt([]string{`age > `, ` and name = `, ``}, 20, `Bob`)
	// text: `age > $1 and name = $2`
	// args: []any{20, `Bob`}

Literal segments must not contain ordinal placeholders, since they would refer
to args the template doesn't have.
*/
func Txt(segments []string, values ...any) Frag {
	if len(segments) == 0 || len(values) != len(segments)-1 {
		panic(ErrMalformedTemplate.while(`rendering template`).becausef(
			`expected %v interpolated values for %v segments, got %v`,
			max(len(segments)-1, 0), len(segments), len(values),
		))
	}

	var bui Bui
	for ind, seg := range segments {
		validateLiteral(`rendering template`, seg)
		bui.Text = append(bui.Text, seg...)

		if ind < len(values) {
			val := values[ind]
			if !appendInlineValue(&bui, val) {
				bui.Text = bui.OrphanArg(val).Append(bui.Text)
			}
		}
	}
	return bui.Frag()
}

/*
Shortcut for `Txt` where the segments are obtained by splitting the text on the
"{}" marker:

	sqf.T(`age > {} and name = {}`, 20, `Bob`)
	// text: `age > $1 and name = $2`
	// args: []any{20, `Bob`}
*/
func T(text string, values ...any) Frag {
	return Txt(strings.Split(text, templateMarker), values...)
}

/*
Ordinal form of a fragment: "$1" refers to `args[0]`, and so on. Placeholders
may be repeated and may appear in any order. If an argument is a `Frag`,
`Query` or other `Expr`, it's inlined at the placeholder instead of becoming a
bound parameter; the placeholders of the resulting frag are renumerated as
needed.

	sqf.Sql(`id in ($1) and kind = $2`, sqf.Sql(`select id from a where x = $1`, 10), `one`)
	// text: `id in (select id from a where x = $1) and kind = $2`
	// args: []any{10, `one`}

Panics when: a placeholder exceeds the argument count; an argument is unused;
the text has named parameters such as ":name"; the text has unterminated
quotes or comments.
*/
func Sql(text string, args ...any) Frag {
	const while = `rendering ordinal fragment`

	var bui Bui
	ords := make([]OrdinalParam, len(args))
	used := make([]bool, len(args))

	walkNodes(while, text, func(node sqlp.Node) {
		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			ind := ordinalIn(while, node, len(args)).Index()
			used[ind] = true

			if appendInlineValue(&bui, args[ind]) {
				return
			}
			if ords[ind] == 0 {
				ords[ind] = bui.OrphanArg(args[ind])
			}
			bui.Text = ords[ind].Append(bui.Text)

		case sqlp.NodeNamedParam:
			panic(ErrUnexpectedParameter.while(while).becausef(
				`expected only ordinal params, got named param %q`, appendNode(nil, node),
			))

		default:
			bui.Text = appendNode(bui.Text, node)
		}
	})

	for ind, ok := range used {
		if !ok {
			panic(ErrUnusedArgument.while(while).becausef(
				`unused argument %#v at index %v`, args[ind], ind,
			))
		}
	}
	return bui.Frag()
}

/*
Unparameterized text, used verbatim. Panics with `ErrMalformedTemplate` if the
text contains ordinal placeholders, which would have no arguments.
*/
func Verbatim(text string) Frag {
	validateLiteral(`rendering verbatim text`, text)
	return Frag{Text: text}
}

/*
Opt-in identifier quoting. Returns a frag with the name enclosed in double
quotes. Panics with `ErrInvalidInput` if the name contains a double quote. Plain
strings given to clause methods are never quoted.
*/
func Ident(name string) Frag {
	if strings.IndexByte(name, quoteDouble) >= 0 {
		panic(ErrInvalidInput.while(`quoting identifier`).becausef(
			`identifier %q must not contain double quotes`, name,
		))
	}
	return Frag{Text: string(quoteDouble) + name + string(quoteDouble)}
}

func validateLiteral(while, text string) {
	if strings.IndexByte(text, ordinalParamPrefix) < 0 {
		return
	}

	walkNodes(while, text, func(node sqlp.Node) {
		ord, ok := node.(sqlp.NodeOrdinalParam)
		if ok {
			panic(ErrMalformedTemplate.while(while).becausef(
				`unexpected ordinal parameter %q in literal text %q`, OrdinalParam(ord).String(), text,
			))
		}
	})
}

/*
Appends a non-scalar value without spacing, returning true. Returns false for
plain values, which should become bound parameters.
*/
func appendInlineValue(bui *Bui, val any) bool {
	switch val := val.(type) {
	case Frag:
		bui.Set(val.appendInline(bui.Get()))
		return true

	case Raw:
		bui.Set(Frag(val).appendInline(bui.Get()))
		return true

	case Query:
		bui.Set(val.subFrag().appendInline(bui.Get()))
		return true

	case Expr:
		sub := Bui{Case: bui.Case}
		sub.Expr(val)
		bui.Set(sub.Frag().appendInline(bui.Get()))
		return true

	default:
		return false
	}
}
