package sqf

import (
	"fmt"
	r "reflect"
	"runtime"
	"strings"
	"testing"
)

type Internal struct {
	Id   string `json:"internalId"   db:"id"`
	Name string `json:"internalName" db:"name"`
}

type External struct {
	Id       string   `json:"externalId"       db:"id"`
	Name     string   `json:"externalName"     db:"name"`
	Internal Internal `json:"externalInternal" db:"internal"`
}

type Embed struct {
	Id        string `json:"embedId"   db:"embed_id"`
	Name      string `json:"embedName" db:"embed_name"`
	Untagged0 string ``
	Untagged1 string `db:"-"`
}

type Outer struct {
	Embed
	Id       string `json:"outerId"   db:"outer_id"`
	Name     string `json:"outerName" db:"outer_name"`
	OnlyJson string `json:"onlyJson"`
}

type Void struct{}

type UnitStruct struct {
	One any `db:"one" json:"one"`
}

type PairStruct struct {
	One any `db:"one" json:"one"`
	Two any `db:"two" json:"two"`
}

type TrioStruct struct {
	One   any `db:"one" json:"one"`
	Two   any `db:"two" json:"two"`
	Three any `db:"three" json:"three"`
}

type list = []any

type Encoder interface {
	fmt.Stringer
	Appender
	Expr
}

func testEncoder(t testing.TB, exp string, val Encoder) {
	t.Helper()
	eq(t, exp, val.String())
	eq(t, exp, string(val.Append(nil)))
	eq(t, exp, reify(val).Text)
}

func testExpr(t testing.TB, exp R, val Encoder) {
	t.Helper()
	testEncoder(t, exp.Text, val)
	eq(t, exp, reify(val))
}

func testQuery(t testing.TB, exp R, val Query) {
	t.Helper()
	eq(t, exp, reify(val))
	eq(t, exp, R(val.Frag()).Norm())
}

func reify(vals ...Expr) R {
	var bui Bui
	for _, val := range vals {
		bui.Expr(val)
	}
	return R{string(bui.Text), bui.Args}.Norm()
}

// Short for "reified".
func rei(text string, args ...any) R { return R{text, args}.Norm() }

// Short for "reified". Test-only mirror of `Frag` with normalized args.
type R struct {
	Text string
	Args list
}

/*
We don't really care about the difference between nil and zero-length arg
lists.
*/
func (self R) Norm() R {
	if self.Args == nil {
		self.Args = list{}
	}
	return self
}

func eq(t testing.TB, exp, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

func notEq(t testing.TB, exp, act any) {
	t.Helper()
	if r.DeepEqual(exp, act) {
		t.Fatalf(`
unexpected equality (detailed):
	%#[1]v
unexpected equality (simple):
	%[1]v
`, exp, act)
	}
}

func panics(t testing.TB, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)

	if val == nil {
		t.Fatalf(`expected %v to panic, found no panic`, funcName(fun))
	}

	str := fmt.Sprint(val)
	if !strings.Contains(str, msg) {
		t.Fatalf(
			`expected %v to panic with a message containing %q, found %q`,
			funcName(fun), msg, str,
		)
	}
}

func funcName(val any) string {
	return runtime.FuncForPC(r.ValueOf(val).Pointer()).Name()
}

func catchAny(fun func()) (val any) {
	defer recAny(&val)
	fun()
	return
}

func recAny(ptr *any) { *ptr = recover() }
