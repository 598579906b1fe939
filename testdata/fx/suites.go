// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fx

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/slukits/gospec"
)

// Set is a clonable environment of integers sharing its Log with all its
// clones.
type Set struct {
	Items map[int]bool
	Log   *FixtureLog
}

// NewSet returns an empty set logging to given log; a new log is
// created if nil.
func NewSet(log *FixtureLog) Set {
	if log == nil {
		log = &FixtureLog{}
	}
	return Set{Items: map[int]bool{}, Log: log}
}

// Clone copies a set's items; the log is shared.
func (s Set) Clone() Set {
	items := make(map[int]bool, len(s.Items))
	for k, v := range s.Items {
		items[k] = v
	}
	return Set{Items: items, Log: s.Log}
}

// Len returns the number of items of a set.
func (s Set) Len() int { return len(s.Items) }

// Add adds given integer to a set.
func (s *Set) Add(i int) { s.Items[i] = true }

// Empty is a suite with one passing example asserting an empty set.
func Empty() *gospec.Suite[Set] {
	return gospec.NewSuite("s", NewSet(nil), func(ctx *gospec.Context[Set]) {
		ctx.Then("is empty", func(s *Set) bool { return s.Len() == 0 })
	})
}

// AddingTwice is a suite whose examples only pass if a context's clone
// of its parent's environment is taken after the parent's before-all
// hooks have run.
func AddingTwice() *gospec.Suite[Set] {
	return gospec.NewSuite("s", NewSet(nil), func(ctx *gospec.Context[Set]) {
		ctx.Then("is empty", func(s *Set) bool { return s.Len() == 0 })
		ctx.Context("adding", func(ctx *gospec.Context[Set]) {
			ctx.BeforeAll(func(s *Set) { s.Add(42) })
			ctx.Then("len==1", func(s *Set) bool { return s.Len() == 1 })
			ctx.Context("adding again", func(ctx *gospec.Context[Set]) {
				ctx.BeforeAll(func(s *Set) { s.Add(42) })
				ctx.Then("len unchanged", func(s *Set) bool {
					return s.Len() == 1
				})
			})
		})
	})
}

// PanicMsg is the panic value of the "boom" example of Panicking.
const PanicMsg = "boom"

// Panicking is a suite with a panicking example followed by a passing
// sibling; both increment given counter.
func Panicking(count *int32) *gospec.Suite[Set] {
	return gospec.NewSuite("s", NewSet(nil), func(ctx *gospec.Context[Set]) {
		ctx.Then("boom", func(*Set) {
			atomic.AddInt32(count, 1)
			panic(PanicMsg)
		})
		ctx.Then("ok", func(*Set) bool {
			atomic.AddInt32(count, 1)
			return true
		})
	})
}

// Sorted returns the items of a set in ascending order.
func (s Set) Sorted() []int {
	ii := make([]int, 0, len(s.Items))
	for i := range s.Items {
		ii = append(ii, i)
	}
	slices.Sort(ii)
	return ii
}

// Teardown is a suite whose context "c" adds 1 before all of its
// examples while each example adds its own integer to its copy.  The
// after-all hook of "c" logs the items it sees, i.e. "c after all: [1]"
// unless an example's change leaked into the context's environment.
func Teardown(log *FixtureLog) *gospec.Suite[Set] {
	return gospec.NewSuite("teardown", NewSet(log),
		func(ctx *gospec.Context[Set]) {
			ctx.When("c", func(ctx *gospec.Context[Set]) {
				ctx.BeforeAll(func(s *Set) { s.Add(1) })
				ctx.Then("adds 2", func(s *Set) bool {
					s.Add(2)
					return s.Len() == 2
				})
				ctx.Then("adds 3", func(s *Set) bool {
					s.Add(3)
					return s.Len() == 2
				})
				ctx.AfterAll(func(s *Set) {
					s.Log.Log("c after all: ", s.Sorted())
				})
			})
			ctx.AfterAll(func(s *Set) {
				s.Log.Log("after all: ", s.Sorted())
			})
		})
}

// Hooks is a suite logging each hook and example it runs to given log.
// Its examples are
//
//	Then "a"
//	When "b"
//	  Then "b1"
//	  Then "b2"
func Hooks(log *FixtureLog) *gospec.Suite[Set] {
	return gospec.Describe("hooks", NewSet(log), func(ctx *gospec.Context[Set]) {
		ctx.BeforeAll(func(s *Set) { s.Log.Log("before all") })
		ctx.BeforeEach(func(s *Set) { s.Log.Log("before each") })
		ctx.AfterEach(func(s *Set) { s.Log.Log("after each") })
		ctx.AfterAll(func(s *Set) { s.Log.Log("after all") })
		ctx.Then("a", func(s *Set) { s.Log.Log("a") })
		ctx.When("b", func(ctx *gospec.Context[Set]) {
			ctx.BeforeAll(func(s *Set) { s.Log.Log("b before all") })
			ctx.BeforeEach(func(s *Set) { s.Log.Log("b before each") })
			ctx.AfterAll(func(s *Set) { s.Log.Log("b after all") })
			ctx.Then("b1", func(s *Set) { s.Log.Log("b1") })
			ctx.Then("b2", func(s *Set) { s.Log.Log("b2") })
		})
	})
}

// HooksSerialLog is the log of a serial run of the Hooks suite.
var HooksSerialLog = []string{
	"before all",
	"before each", "a", "after each",
	"before each", "b before all",
	"b before each", "b1",
	"b before each", "b2",
	"b after all", "after each",
	"after all",
}

// Mixed is a suite with passing, failing and ignored examples of every
// body shape nested in named contexts and an anonymous scope:
//
//	Given "mixed"
//	  It "passes"                      ok
//	  Context "failing"
//	    It "returns false"             FAILED
//	    It "returns an error"          FAILED
//	    It "is ignored"                ignored
//	  (scope)
//	    It "asserts"                   FAILED
//	    It "returns nil"               ok
func Mixed() *gospec.Suite[Set] {
	return gospec.Given("mixed", NewSet(nil), func(ctx *gospec.Context[Set]) {
		ctx.It("passes", func(*Set) {})
		ctx.Context("failing", func(ctx *gospec.Context[Set]) {
			ctx.It("returns false", func(*Set) bool { return false })
			ctx.It("returns an error", func(*Set) error {
				return errors.New(ErrMsg)
			})
			ctx.It("is ignored", func(*Set) gospec.Result {
				return gospec.IgnoredResult()
			})
		})
		ctx.Scope(func(ctx *gospec.Context[Set]) {
			ctx.It("asserts", func(s *Set, a *gospec.A) {
				a.Eq(1, s.Len())
			})
			ctx.It("returns nil", func(*Set) error { return nil })
		})
	})
}

// ErrMsg is the error message of Mixed's failing example returning an
// error.
const ErrMsg = "mixed: failing"

// Wide returns a suite with n examples in each of n contexts whose
// examples log their path to given log.
func Wide(n int, log *FixtureLog) *gospec.Suite[Set] {
	return gospec.NewSuite("wide", NewSet(log), func(ctx *gospec.Context[Set]) {
		for i := 0; i < n; i++ {
			i := i
			ctx.Context(fmt.Sprint(i), func(ctx *gospec.Context[Set]) {
				ctx.BeforeAll(func(s *Set) { s.Add(i) })
				for j := 0; j < n; j++ {
					j := j
					ctx.It(fmt.Sprint(j), func(s *Set) bool {
						s.Log.Log(i, "/", j)
						s.Add(n + j)
						return s.Len() == 2 && s.Items[i]
					})
				}
			})
		}
	})
}
