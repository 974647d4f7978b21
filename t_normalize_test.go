package sqf

import (
	"errors"
	"strings"
	"testing"
)

func Test_Normalize(t *testing.T) {
	test := func(exp Expression, src any) {
		t.Helper()
		out, err := Normalize(src)
		eq(t, nil, err)
		eq(t, exp, out)
	}

	test(Column(`age`), `age`)
	test(Column(`age`), Column(`age`))
	test(Raw{Text: `age`}, T(`age`))
	test(Raw{`age > $1`, list{10}}, T(`age > {}`, 10))
	test(Raw{`age > $1`, list{10}}, Raw(T(`age > {}`, 10)))
	test(Raw{`(select * from person where age > $1)`, list{10}}, From(`person`).Where(T(`age > {}`, 10)))
	test(Tuple{}, []string{})
	test(Tuple{}, []any(nil))
	test(Tuple{Column(`a`), Column(`b`)}, []string{`a`, `b`})
	test(Tuple{Column(`a`), Column(`b`)}, [2]string{`a`, `b`})
	test(Tuple{Column(`a`), Column(`b`)}, []Column{`a`, `b`})
	test(Tuple{Tuple{Column(`a`)}, Raw{Text: `b`}}, []any{[]string{`a`}, T(`b`)})
	test(Tuple{Column(`a`)}, Tuple{Column(`a`)})
	test(Wrapper{KeywordRollup, []Expression{Column(`a`)}}, Rollup(`a`))
	test(Raw{Text: `a desc`}, Desc(`a`))
	test(Raw{Text: `a`}, &Frag{Text: `a`})
}

func Test_Normalize_invalid(t *testing.T) {
	test := func(msg string, src any) {
		t.Helper()
		out, err := Normalize(src)
		eq(t, nil, out)
		eq(t, true, errors.Is(err, ErrInvalidExpressionArgument))
		if err == nil || !strings.Contains(err.Error(), msg) {
			t.Fatalf(`expected error containing %q, got %v`, msg, err)
		}
	}

	test(`unsupported value <nil> of type nil`, nil)
	test(`unsupported value 10 of type int`, 10)
	test(`unsupported value []byte{0x1} of type []uint8`, []byte{1})
	test(`of type map[string]int`, map[string]int{})
	test(`of type struct {}`, struct{}{})
	test(`at element [2]`, []any{`a`, `b`, 3})
	test(`at element [0][1]`, [][]any{{`a`, true}})
	test(`of type *sqf.Frag`, (*Frag)(nil))
	test(`of type *sqf.Query`, (*Query)(nil))
	test(`unsupported value "" of type string`, ``)
	test(`of type sqf.Frag`, Frag{Text: "\n"})
	test(`at element [1]`, []any{`a`, Raw{}})
}

func Test_Wrapper(t *testing.T) {
	testExpr(t, rei(`rollup (a)`), Rollup(`a`))
	testExpr(t, rei(`cube (a, b)`), Cube(`a`, `b`))
	testExpr(t, rei(`grouping sets (())`), GroupingSets([]string{}))
	testExpr(t, rei(`rollup ()`), Rollup())
	testExpr(t, rei(`rollup (a = $1, (b, c = $2))`, 10, 20), Rollup(T(`a = {}`, 10), []any{`b`, T(`c = {}`, 20)}))
}

func Test_Expression_variants(t *testing.T) {
	testExpr(t, rei(`age`), Column(`age`))
	testExpr(t, rei(`age = $1`, 10), Raw(T(`age = {}`, 10)))
	testExpr(t, rei(`()`), Tuple{})
	testExpr(t, rei(`(a, (b))`), Tuple{Column(`a`), Tuple{Column(`b`)}})
}
