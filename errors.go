package sqf

import (
	"fmt"
	"io"

	e "errors"

	"github.com/pkg/errors"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown                   ErrCode = ``
	ErrCodeInvalidExpressionArgument ErrCode = `InvalidExpressionArgument`
	ErrCodeMalformedTemplate         ErrCode = `MalformedTemplate`
	ErrCodeOrdinalOutOfBounds        ErrCode = `OrdinalOutOfBounds`
	ErrCodeUnusedArgument            ErrCode = `UnusedArgument`
	ErrCodeUnexpectedParameter       ErrCode = `UnexpectedParameter`
	ErrCodeInvalidInput              ErrCode = `InvalidInput`
	ErrCodeUnsupportedDialect        ErrCode = `UnsupportedDialect`
	ErrCodeInternal                  ErrCode = `Internal`
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, sqf.ErrInvalidExpressionArgument) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrInvalidExpressionArgument = Err{Code: ErrCodeInvalidExpressionArgument, Cause: errors.New(`invalid expression argument`)}
	ErrMalformedTemplate         = Err{Code: ErrCodeMalformedTemplate, Cause: errors.New(`malformed template`)}
	ErrOrdinalOutOfBounds        = Err{Code: ErrCodeOrdinalOutOfBounds, Cause: errors.New(`ordinal parameter exceeds arguments`)}
	ErrUnusedArgument            = Err{Code: ErrCodeUnusedArgument, Cause: errors.New(`unused argument`)}
	ErrUnexpectedParameter       = Err{Code: ErrCodeUnexpectedParameter, Cause: errors.New(`unexpected parameter`)}
	ErrInvalidInput              = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrUnsupportedDialect        = Err{Code: ErrCodeUnsupportedDialect, Cause: errors.New(`unsupported dialect`)}
	ErrInternal                  = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

/*
Type of errors returned or panicked by this package. `.Cause` is usually created
via "github.com/pkg/errors" and carries a stack trace, which is printed when
formatting with "%+v".
*/
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ``
	}
	return string(self.appendPrefix(nil)) + self.causeString()
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && e.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code && err.Code != ErrCodeUnknown
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error { return self.Cause }

/*
Implement `fmt.Formatter`. With the "+" flag, the cause is formatted with "%+v",
which for causes from "github.com/pkg/errors" includes the stack trace.
*/
func (self Err) Format(out fmt.State, verb rune) {
	if verb == 'v' && out.Flag('+') && self.Cause != nil {
		_, _ = out.Write(self.appendPrefix(nil))
		_, _ = fmt.Fprintf(out, `%+v`, self.Cause)
		return
	}
	_, _ = io.WriteString(out, self.Error())
}

func (self Err) appendPrefix(buf []byte) []byte {
	buf = append(buf, `[sqf]`...)
	if self.Code != ErrCodeUnknown {
		buf = append(buf, ` `...)
		buf = append(buf, self.Code...)
	} else {
		buf = append(buf, ` error`...)
	}
	if self.While != `` {
		buf = append(buf, ` while `...)
		buf = append(buf, self.While...)
	}
	if self.Cause != nil {
		buf = append(buf, `: `...)
	}
	return buf
}

func (self Err) causeString() string {
	if self.Cause == nil {
		return ``
	}
	return self.Cause.Error()
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

func (self Err) becausef(pattern string, args ...any) Err {
	return self.because(errors.Errorf(pattern, args...))
}

/*
Runs the function, converting a panic with an `error` value into a returned
error. Non-error panics are re-raised. Construction functions in this package
panic with `Err` at the call that introduced the bad input; this allows callers
who insist on errors-as-values to recover them:

	err := sqf.Catch(func() {
		query = sqf.From(`person`).GroupBy(someUntrustedValue)
	})
*/
func Catch(fun func()) (err error) {
	defer rec(&err)
	if fun != nil {
		fun()
	}
	return
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}
