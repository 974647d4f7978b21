package sqf

import (
	e "errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type FakeTracedErr string

func (self FakeTracedErr) Error() string { return string(self) }

func (self FakeTracedErr) Format(out fmt.State, _ rune) {
	try1(io.WriteString(out, self.Error()))

	if out.Flag('+') {
		if self != `` {
			try1(io.WriteString(out, `; `))
		}
		try1(io.WriteString(out, `fake stack trace`))
		return
	}
}

func Test_Err_formatting(t *testing.T) {
	test := func(src Err, expBase, expPlus string) {
		t.Helper()
		eq(t, expBase, src.Error())
		eq(t, expBase, fmt.Sprintf(`%v`, src))
		eq(t, expPlus, fmt.Sprintf(`%+v`, src))
	}

	test(Err{}, ``, ``)

	test(
		Err{While: `doing some operation`},
		`[sqf] error while doing some operation`,
		`[sqf] error while doing some operation`,
	)

	test(
		Err{Cause: FakeTracedErr(`some cause`)},
		`[sqf] error: some cause`,
		`[sqf] error: some cause; fake stack trace`,
	)

	test(
		Err{
			Code:  ErrCodeMalformedTemplate,
			While: `doing some operation`,
			Cause: FakeTracedErr(`some cause`),
		},
		`[sqf] MalformedTemplate while doing some operation: some cause`,
		`[sqf] MalformedTemplate while doing some operation: some cause; fake stack trace`,
	)
}

func Test_Err_stack_trace(t *testing.T) {
	err := ErrInvalidInput.while(`testing`).becausef(`some %v`, `cause`)

	eq(t, `[sqf] InvalidInput while testing: some cause`, err.Error())

	plus := fmt.Sprintf(`%+v`, err)
	if !strings.HasPrefix(plus, `[sqf] InvalidInput while testing: some cause`) {
		t.Fatalf(`unexpected detailed format %q`, plus)
	}
	if !strings.Contains(plus, `Test_Err_stack_trace`) {
		t.Fatalf(`expected detailed format to include a stack trace, got %q`, plus)
	}
}

func Test_Err_Is(t *testing.T) {
	err := ErrUnusedArgument.while(`testing`).becausef(`unused`)

	eq(t, true, e.Is(err, ErrUnusedArgument))
	eq(t, true, errors.Is(err, ErrUnusedArgument))
	eq(t, false, e.Is(err, ErrOrdinalOutOfBounds))

	cause := errors.New(`cause`)
	eq(t, true, e.Is(Err{Cause: cause}, cause))

	var target Err
	eq(t, true, e.As(fmt.Errorf(`wrapped: %w`, err), &target))
	eq(t, ErrCodeUnusedArgument, target.Code)
}

func Test_Catch(t *testing.T) {
	t.Run(`nil`, func(t *testing.T) {
		eq(t, nil, Catch(nil))
	})

	t.Run(`no panic`, func(t *testing.T) {
		eq(t, nil, Catch(func() {}))
	})

	t.Run(`error panic`, func(t *testing.T) {
		err := Catch(func() { From(`person`).GroupBy(10) })
		eq(t, true, e.Is(err, ErrInvalidExpressionArgument))
	})

	t.Run(`non-error panic`, func(t *testing.T) {
		panics(t, `not an error`, func() {
			_ = Catch(func() { panic(`not an error`) })
		})
	})
}
