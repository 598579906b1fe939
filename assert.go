// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
)

// A collects the failed assertions of an example body.  It is passed to
// bodies of the form
//
//	ctx.It("has one element", func(env *set, a *gospec.A) {
//	    a.Eq(1, env.Len())
//	    a.True(env.Has(42))
//	})
//
// Every assertion returns true iff it passed; a failed assertion never
// stops the body.  The example fails iff at least one assertion failed.
type A struct {
	mutex    sync.Mutex
	failures []string
	silent   int
}

// Result returns a success if no assertion failed; otherwise a failure
// whose message holds all failure messages.
func (a *A) Result() Result {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if len(a.failures) == 0 {
		return Succeeded()
	}
	return Failed(strings.Join(a.failures, "\n"))
}

// Failures returns the messages of the failed assertions.
func (a *A) Failures() []string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return append([]string(nil), a.failures...)
}

// Fail fails the example with given message.
func (a *A) Fail(args ...interface{}) bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.silent > 0 {
		return false
	}
	a.failures = append(a.failures, fmt.Sprint(args...))
	return false
}

// Failf fails the example with given formatted message.
func (a *A) Failf(format string, args ...interface{}) bool {
	return a.Fail(fmt.Sprintf(format, args...))
}

// quietly evaluates given assertion without recording a failure.
func (a *A) quietly(assertion func() bool) bool {
	a.mutex.Lock()
	a.silent++
	a.mutex.Unlock()
	defer func() {
		a.mutex.Lock()
		a.silent--
		a.mutex.Unlock()
	}()
	return assertion()
}

// assertErr is the format-string for assertion failures.
const assertErr = "assert %s:\n%v"

// TrueErr default message for failed 'true'-assertion.
const TrueErr = "expected given value to be true"

// True fails the example and returns false iff given value is not true.
func (a *A) True(value bool) bool {
	if !value {
		return a.Failf(assertErr, "true", TrueErr)
	}
	return true
}

// FalseErr default message for failed 'false'-assertion.
const FalseErr = "expected given value to be false"

// False fails the example and returns false iff given value is true.
func (a *A) False(value bool) bool {
	if value {
		return a.Failf(assertErr, "false", FalseErr)
	}
	return true
}

const eqTypeErr = "types mismatch %v != %v"

// Eq fails the example with a diff of given values and returns false if
// they are not considered equal.  x and y are considered equal if they
// are of the same type or one of them is a string while the other one
// is a fmt.Stringer and
//   - x == y in case of two pointers
//   - x.String() == y.String() in case of Stringer implementations
//   - x == y.String() or x.String() == y in case of string and
//     Stringer
//   - fmt.Sprintf("%v", x) == fmt.Sprintf("%v", y) in other cases.
func (a *A) Eq(x, y interface{}) bool {
	differentTypes := fmt.Sprintf("%T", x) != fmt.Sprintf("%T", y)
	if differentTypes && !isStringers(x, y) {
		return a.Failf(assertErr, "equal: types", fmt.Sprintf(
			eqTypeErr, fmt.Sprintf("%T", x), fmt.Sprintf("%T", y)))
	}

	if reflect.ValueOf(x).Kind() == reflect.Ptr {
		if x != y {
			return a.Failf(assertErr, "equal: pointer",
				fmt.Sprintf("%p != %p", x, y))
		}
		return true
	}

	if d := diff(x, y, differentTypes); d != "" {
		return a.Failf(assertErr, "equal: string-representations", d)
	}
	return true
}

func isStringers(x, y interface{}) bool {
	_, okX := x.(fmt.Stringer)
	_, okY := y.(fmt.Stringer)
	if !okX && !okY {
		return false
	}
	if okX && okY {
		return true
	}
	if okX {
		_, ok := y.(string)
		return ok
	}
	_, ok := x.(string)
	return ok
}

func diff(x, y interface{}, differentTypes bool) string {
	if differentTypes {
		x, y = toString(x), toString(y)
	}
	switch x := x.(type) {
	case string:
		if x != y.(string) {
			return cmp.Diff(x, y.(string))
		}
	case fmt.Stringer:
		if x.String() != y.(fmt.Stringer).String() {
			return cmp.Diff(x.String(), y.(fmt.Stringer).String())
		}
	default:
		if fmt.Sprintf("%v", x) != fmt.Sprintf("%v", y) {
			return cmp.Diff(fmt.Sprintf("%v", x), fmt.Sprintf("%v", y))
		}
	}
	return ""
}

// StringRepresentation documents what a string representation of any
// type is:
//   - the string if it is of type string,
//   - the return value of String if the Stringer interface is
//     implemented,
//   - fmt.Sprintf("%v", value) in all other cases.
type StringRepresentation interface{}

func toString(value interface{}) string {
	switch value := value.(type) {
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// ContainsErr default message for failed 'Contains'-assertion.
const ContainsErr = "%s doesn't contain %s"

// Contains fails the example and returns false iff given value's string
// representation doesn't contain given sub-string.
func (a *A) Contains(value StringRepresentation, sub string) bool {
	str := toString(value)
	if !strings.Contains(str, sub) {
		return a.Failf(assertErr, "contains", fmt.Sprintf(
			ContainsErr, quoteLines(str), quoteLines(sub)))
	}
	return true
}

func quoteLines(s string) string {
	if strings.Contains(s, "\n") {
		return "\n" + strings.TrimSuffix(s, "\n") + "\n"
	}
	return fmt.Sprintf("%q", s)
}

// MatchedErr default message for failed *'Matched'-assertion.
const MatchedErr = "regexp\n'%s'\ndoesn't match\n'%s'"

// Matched fails the example and returns false iff given value's string
// representation isn't matched by given regular expression.
func (a *A) Matched(value StringRepresentation, regex string) bool {
	str := toString(value)
	re := regexp.MustCompile(regex)
	if !re.MatchString(str) {
		return a.Failf(assertErr, "matched",
			fmt.Sprintf(MatchedErr, re.String(), str))
	}
	return true
}

// SpaceMatched escapes given strings before it joins them with the
// `\s*`-separator and matches the result against given value's string
// representation, e.g.:
//
//	<p>
//	   some text
//	</p>
//
// would be matched by
//
//	a.SpaceMatched(value, "<p>", "some text", "</p>").
func (a *A) SpaceMatched(value StringRepresentation, ss ...string) bool {
	re, str := reGen(`\s*`, "", ss...), toString(value)
	if !re.MatchString(str) {
		return a.Failf(assertErr, "space-match",
			fmt.Sprintf(MatchedErr, re.String(), str))
	}
	return true
}

// StarMatched escapes given strings before it joins them with the
// `.*?`-separator and matches the result against given value's string
// representation, e.g. above paragraph would be matched by
//
//	a.StarMatched(value, "p", "me", "x", "/p").
func (a *A) StarMatched(value StringRepresentation, ss ...string) bool {
	re, str := reGen(`.*?`, `(?s)`, ss...), toString(value)
	if !re.MatchString(str) {
		return a.Failf(assertErr, "star-match",
			fmt.Sprintf(MatchedErr, re.String(), str))
	}
	return true
}

func reGen(sep string, flags string, ss ...string) *regexp.Regexp {
	quoted := []string{}
	for _, s := range ss {
		if strings.Contains(s, "\n") {
			for _, line := range strings.Split(s, "\n") {
				quoted = append(
					quoted, regexp.QuoteMeta(strings.TrimSpace(line)))
			}
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(s))
	}
	return regexp.MustCompile(flags + strings.Join(quoted, sep))
}

// ErrErr default message for failed "Err"-assertion
const ErrErr = "given value doesn't implement 'error'"

// Err fails the example and returns false iff given value doesn't
// implement the error-interface.
func (a *A) Err(err interface{}) bool {
	if _, ok := err.(error); !ok {
		return a.Failf(assertErr, "error", ErrErr)
	}
	return true
}

// ErrIsErr default message for failed "ErrIs"-assertion
const ErrIsErr = "given error doesn't wrap target-error"

// ErrIs fails the example and returns false iff given err doesn't
// implement the error-interface or doesn't wrap given target.
func (a *A) ErrIs(err interface{}, target error) bool {
	e, ok := err.(error)
	if !ok {
		return a.Failf(assertErr, "error is", ErrIsErr)
	}
	if errors.Is(e, target) {
		return true
	}
	return a.Failf(assertErr, "error is",
		fmt.Sprintf("%s: %+v\n%+v", ErrIsErr, e, target))
}

// ErrMatchedErr default message for failed "ErrMatched"-assertion
const ErrMatchedErr = "given regexp '%s' doesn't match '%s'"

// ErrMatched fails the example and returns false iff given err doesn't
// implement the error-interface or its message isn't matched by given
// regular expression.  A "%s" in given expression matches anything.
func (a *A) ErrMatched(err interface{}, re string) bool {
	e, ok := err.(error)
	if !ok {
		return a.Failf(assertErr, "error matched", ErrErr)
	}
	re = strings.ReplaceAll(re, "%s", ".*?")
	if !regexp.MustCompile(re).MatchString(e.Error()) {
		return a.Failf(assertErr, "error matched", fmt.Sprintf(
			ErrMatchedErr, re, e.Error()))
	}
	return true
}

// PanicsErr default message for failed "Panics"-assertion
const PanicsErr = "given function doesn't panic"

// Panics fails the example and returns false iff given function doesn't
// panic.
func (a *A) Panics(f func()) (hasPanicked bool) {
	defer func() {
		if r := recover(); r == nil {
			hasPanicked = a.Failf(assertErr, "panics", PanicsErr)
			return
		}
		hasPanicked = true
	}()
	f()
	return true
}

// WithinErr default message for failed "Within"-assertion
const WithinErr = "timeout while condition unfulfilled"

// Within checks after each step of given time-stepper if given
// condition returns true and fails the example iff the time-stepper's
// whole duration elapsed without the condition being fulfilled.
func (a *A) Within(d *TimeStepper, cond func() bool) bool {
	time.Sleep(d.Step())
	if cond() {
		return true
	}
	for d.AddStep() {
		time.Sleep(d.Step())
		if cond() {
			return true
		}
	}
	return a.Failf(assertErr, "within", WithinErr)
}

// Not provides the negations of A's assertions, e.g.
//
//	a.Not().Eq(41, env.Len())
type Not struct{ a *A }

// Not returns the negations of a's assertions.
func (a *A) Not() Not { return Not{a: a} }

const notErr = "assert not %s:\n%s"

// True passes iff given value is false.
func (n Not) True(value bool) bool {
	if n.a.quietly(func() bool { return n.a.True(value) }) {
		return n.a.Failf(notErr, "true", FalseErr)
	}
	return true
}

// Eq passes iff A.Eq fails for given values.
func (n Not) Eq(x, y interface{}) bool {
	if n.a.quietly(func() bool { return n.a.Eq(x, y) }) {
		return n.a.Failf(notErr, "equal",
			fmt.Sprintf("%v == %v", toString(x), toString(y)))
	}
	return true
}

// Contains passes iff A.Contains fails for given arguments.
func (n Not) Contains(value StringRepresentation, sub string) bool {
	if n.a.quietly(func() bool { return n.a.Contains(value, sub) }) {
		return n.a.Failf(notErr, "contains", fmt.Sprintf(
			"%s does contain %s", quoteLines(toString(value)),
			quoteLines(sub)))
	}
	return true
}

// Matched passes iff A.Matched fails for given arguments.
func (n Not) Matched(value StringRepresentation, regex string) bool {
	if n.a.quietly(func() bool { return n.a.Matched(value, regex) }) {
		return n.a.Failf(notErr, "matched", fmt.Sprintf(
			"regexp\n'%s'\nmatches\n'%s'", regex, toString(value)))
	}
	return true
}

// TimeStepper splits a duration into steps.  The duration defaults to 10
// milliseconds segmented into 1 millisecond steps.  The zero value is
// ready to use.
type TimeStepper struct {
	duration time.Duration
	step     time.Duration
	elapsed  time.Duration
}

// Duration is the overall duration a time-stepper represents defaulting
// to 10 milliseconds.
func (t *TimeStepper) Duration() time.Duration {
	if t.duration == 0 {
		t.duration = 10 * time.Millisecond
	}
	return t.duration
}

// SetDuration sets the overall duration a time-stepper represents.
func (t *TimeStepper) SetDuration(d time.Duration) *TimeStepper {
	t.duration = d
	return t
}

// Step is the step-segment of a time-stepper's overall duration
// defaulting to 1 millisecond.
func (t *TimeStepper) Step() time.Duration {
	if t.step == 0 {
		t.step = 1 * time.Millisecond
	}
	return t.step
}

// SetStep sets the duration of a segment of a time-stepper's overall
// duration.
func (t *TimeStepper) SetStep(s time.Duration) *TimeStepper {
	t.step = s
	return t
}

// AddStep adds an other step to the elapsed time and returns true if
// there is still time left; false otherwise.
func (t *TimeStepper) AddStep() bool {
	t.elapsed += t.Step()
	return t.Duration() > t.elapsed
}
