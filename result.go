// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Outcome discriminates the variants of a Result.
type Outcome uint8

const (
	// Success is the outcome of an example whose body passed.
	Success Outcome = iota
	// Failure is the outcome of an example whose body failed an
	// assertion, returned an error or panicked.
	Failure
	// Ignored is reserved for examples which were not evaluated.  No
	// code path of the runner produces it.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Failure:
		return "failure"
	case Ignored:
		return "ignored"
	default:
		return "success"
	}
}

// Result is the outcome of evaluating an example's body.  A failure's
// Message is optional, i.e. may be empty.
type Result struct {
	Outcome Outcome
	Message string
}

// Succeeded returns a successful result.
func Succeeded() Result { return Result{Outcome: Success} }

// Failed returns a failed result with given (optional) message.
func Failed(msg string) Result { return Result{Outcome: Failure, Message: msg} }

// IgnoredResult returns a result flagging an example as ignored.
func IgnoredResult() Result { return Result{Outcome: Ignored} }

func (r Result) IsSuccess() bool { return r.Outcome == Success }
func (r Result) IsFailure() bool { return r.Outcome == Failure }
func (r Result) IsIgnored() bool { return r.Outcome == Ignored }

func (r Result) String() string {
	if r.Outcome == Failure && r.Message != "" {
		return fmt.Sprintf("%s: %s", r.Outcome, r.Message)
	}
	return r.Outcome.String()
}

// FalseMsg is the failure message of an example body returning false.
const FalseMsg = "assertion failed: expected condition to be true"

// FromBool maps true to a success and false to a failure.
func FromBool(ok bool) Result {
	if ok {
		return Succeeded()
	}
	return Failed(FalseMsg)
}

// FromError maps nil to a success and any other error to a failure
// carrying the error's detailed representation.
func FromError(err error) Result {
	if err == nil {
		return Succeeded()
	}
	return Failed(fmt.Sprintf("%+v", err))
}

// body is the normalized signature every example body is converted to
// at registration time.
type body[E any] func(*E) Result

// normalize converts given example body into a body.  Accepted shapes
// are
//
//	func(*E)
//	func(*E) bool
//	func(*E) error
//	func(*E) Result
//	func(*E, *A)
//
// normalize panics if given value is nil or of any other type.
func normalize[E any](fn interface{}) body[E] {
	switch fn := fn.(type) {
	case nil:
		panic("gospec: example body must not be nil")
	case func(*E):
		if fn == nil {
			break
		}
		return func(env *E) Result { fn(env); return Succeeded() }
	case func(*E) bool:
		if fn == nil {
			break
		}
		return func(env *E) Result { return FromBool(fn(env)) }
	case func(*E) error:
		if fn == nil {
			break
		}
		return func(env *E) Result { return FromError(fn(env)) }
	case func(*E) Result:
		if fn == nil {
			break
		}
		return fn
	case func(*E, *A):
		if fn == nil {
			break
		}
		return func(env *E) Result {
			a := &A{}
			fn(env, a)
			return a.Result()
		}
	default:
		var zero E
		panic(fmt.Sprintf(
			"gospec: unsupported example body %T for environment %T",
			fn, zero))
	}
	panic("gospec: example body must not be nil")
}

// errGoexit is the failure cause of a body which called
// runtime.Goexit, e.g. through a testing.T's FailNow.
var errGoexit = errors.New("example body exited its goroutine")

// evaluate runs given body on given environment and converts a panic
// into a failed result.  Memory faults of the body are turned into
// panics for the duration of the call.  The returned panic value is nil
// unless the body panicked.
func evaluate[E any](fn body[E], env *E) (res Result, recovered interface{}) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
		finished := false
		defer func() {
			if r := recover(); r != nil {
				res, recovered = Failed(panicMessage(r)), r
				return
			}
			if !finished {
				res, recovered = Failed(errGoexit.Error()), errGoexit
			}
		}()
		res = fn(env)
		finished = true
	}()
	<-done
	return res, recovered
}

// panicMessage extracts a best effort message from given panic value.
func panicMessage(r interface{}) string {
	switch r := r.(type) {
	case string:
		return r
	case error:
		return r.Error()
	case fmt.Stringer:
		return r.String()
	default:
		return fmt.Sprintf("example panicked with a value of type %T", r)
	}
}
