// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

import (
	"fmt"
	"reflect"
)

// Cloner is implemented by environments which need a deeper copy than
// go's value copy to branch safely, e.g. environments holding maps or
// slices:
//
//	type env struct{ set map[int]bool }
//
//	func (e env) Clone() env {
//	    set := map[int]bool{}
//	    for k, v := range e.set {
//	        set[k] = v
//	    }
//	    return env{set: set}
//	}
type Cloner[E any] interface {
	Clone() E
}

// Hook is a callback registered on a context to set up or tear down the
// environment it is given.
type Hook[E any] func(env *E)

// Block is either a *Context or an *Example.
type Block[E any] interface {
	block(E)
}

// Example is a named test body, i.e. a leaf of a suite's tree.
type Example[E any] struct {
	header ExampleHeader
	body   body[E]
}

func (*Example[E]) block(E) {}

// Header returns the example's header.
func (e *Example[E]) Header() ExampleHeader { return e.header }

// Context groups blocks and the hooks wrapping them.  A context without
// header is an anonymous scope which takes part in hook scoping but is
// not reported to observers.
type Context[E any] struct {
	header     *ContextHeader
	blocks     []Block[E]
	beforeAll  []Hook[E]
	beforeEach []Hook[E]
	afterEach  []Hook[E]
	afterAll   []Hook[E]
}

func (*Context[E]) block(E) {}

// Header returns the context's header and false iff the context is an
// anonymous scope.
func (c *Context[E]) Header() (ContextHeader, bool) {
	if c.header == nil {
		return ContextHeader{}, false
	}
	return *c.header, true
}

// Blocks returns the context's blocks in declaration order.
func (c *Context[E]) Blocks() []Block[E] {
	return append([]Block[E](nil), c.blocks...)
}

// NumBlocks returns the number of direct children of a context.
func (c *Context[E]) NumBlocks() int { return len(c.blocks) }

// NumExamples returns the number of examples in a context's tree.
func (c *Context[E]) NumExamples() int {
	n := 0
	for _, b := range c.blocks {
		switch b := b.(type) {
		case *Example[E]:
			n++
		case *Context[E]:
			n += b.NumExamples()
		}
	}
	return n
}

// IsEmpty returns true iff a context has no blocks.
func (c *Context[E]) IsEmpty() bool { return len(c.blocks) == 0 }

func (c *Context[E]) context(h *ContextHeader, body func(*Context[E])) {
	if body == nil {
		panic("gospec: context body must not be nil")
	}
	child := &Context[E]{header: h}
	body(child)
	c.blocks = append(c.blocks, child)
}

// Context appends a new named context to c and populates it calling
// given body.
func (c *Context[E]) Context(name string, body func(*Context[E])) {
	c.context(&ContextHeader{Label: LabelContext, Name: name}, body)
}

// Specify is an alias of Context labeling the context "Specify".
func (c *Context[E]) Specify(name string, body func(*Context[E])) {
	c.context(&ContextHeader{Label: LabelSpecify, Name: name}, body)
}

// When is an alias of Context labeling the context "When".
func (c *Context[E]) When(name string, body func(*Context[E])) {
	c.context(&ContextHeader{Label: LabelWhen, Name: name}, body)
}

// Scope appends an anonymous context, i.e. a context which is invisible
// to observers but whose hooks only wrap the blocks it holds.
func (c *Context[E]) Scope(body func(*Context[E])) {
	c.context(nil, body)
}

func (c *Context[E]) example(h ExampleHeader, fn interface{}) {
	c.blocks = append(c.blocks, &Example[E]{header: h, body: normalize[E](fn)})
}

// Example appends an example to c.  Given body must be of one of the
// types
//
//	func(*E)          // passes unless it panics
//	func(*E) bool     // passes iff true is returned
//	func(*E) error    // passes iff nil is returned
//	func(*E) Result   // reported as returned
//	func(*E, *A)      // passes iff no assertion of A failed
//
// otherwise Example panics.
func (c *Context[E]) Example(name string, body interface{}) {
	c.example(ExampleHeader{Label: LabelExample, Name: name}, body)
}

// It is an alias of Example labeling the example "It".
func (c *Context[E]) It(name string, body interface{}) {
	c.example(ExampleHeader{Label: LabelIt, Name: name}, body)
}

// Then is an alias of Example labeling the example "Then".
func (c *Context[E]) Then(name string, body interface{}) {
	c.example(ExampleHeader{Label: LabelThen, Name: name}, body)
}

func mustHook[E any](h Hook[E]) Hook[E] {
	if h == nil {
		panic("gospec: hook must not be nil")
	}
	return h
}

// BeforeAll registers given hook to run once on the context's
// environment before any of its blocks is evaluated.
func (c *Context[E]) BeforeAll(h Hook[E]) {
	c.beforeAll = append(c.beforeAll, mustHook(h))
}

// BeforeEach registers given hook to run on each direct child's copy of
// the environment before the child is evaluated.
func (c *Context[E]) BeforeEach(h Hook[E]) {
	c.beforeEach = append(c.beforeEach, mustHook(h))
}

// Before is an alias of BeforeEach.
func (c *Context[E]) Before(h Hook[E]) { c.BeforeEach(h) }

// AfterEach registers given hook to run on each direct child's copy of
// the environment after the child was evaluated.
func (c *Context[E]) AfterEach(h Hook[E]) {
	c.afterEach = append(c.afterEach, mustHook(h))
}

// After is an alias of AfterEach.
func (c *Context[E]) After(h Hook[E]) { c.AfterEach(h) }

// AfterAll registers given hook to run once on the context's
// environment after all its blocks were evaluated.
func (c *Context[E]) AfterAll(h Hook[E]) {
	c.afterAll = append(c.afterAll, mustHook(h))
}

// Suite is the named root of a test tree holding the initial
// environment.  Suites are created by NewSuite, Describe or Given and
// executed by a Runner.
type Suite[E any] struct {
	header SuiteHeader
	env    E
	clone  func(E) E
	root   *Context[E]
}

func newSuite[E any](
	h SuiteHeader, env E, body func(*Context[E]),
) *Suite[E] {
	if body == nil {
		panic("gospec: suite body must not be nil")
	}
	s := &Suite[E]{header: h, env: env, root: &Context[E]{}}
	body(s.root)
	return s
}

// NewSuite builds a suite labeled "Suite" with given initial environment
// whose root context is populated by given body:
//
//	s := gospec.NewSuite("a set", set{}, func(ctx *gospec.Context[set]) {
//	    ctx.It("is empty", func(env *set) bool { return env.Len() == 0 })
//	})
func NewSuite[E any](name string, env E, body func(*Context[E])) *Suite[E] {
	return newSuite(SuiteHeader{Label: LabelSuite, Name: name}, env, body)
}

// Describe is an alias of NewSuite labeling the suite "Describe".
func Describe[E any](name string, env E, body func(*Context[E])) *Suite[E] {
	return newSuite(SuiteHeader{Label: LabelDescribe, Name: name}, env, body)
}

// Given is an alias of NewSuite labeling the suite "Given".
func Given[E any](name string, env E, body func(*Context[E])) *Suite[E] {
	return newSuite(SuiteHeader{Label: LabelGiven, Name: name}, env, body)
}

// WithClone sets the function duplicating the environment each time the
// runner branches into a block.  It defaults to E's Clone method if E
// implements Cloner[E] and to go's value copy otherwise.  The value copy
// is only accepted for environments without maps, slices, pointers,
// channels, functions or interfaces; running a suite of any other
// environment without a clone function or Cloner panics.
func (s *Suite[E]) WithClone(clone func(E) E) *Suite[E] {
	s.clone = clone
	return s
}

// Header returns the suite's header.
func (s *Suite[E]) Header() SuiteHeader { return s.header }

// Root returns the suite's root context which never has a header.
func (s *Suite[E]) Root() *Context[E] { return s.root }

// NumExamples returns the number of examples of the suite.
func (s *Suite[E]) NumExamples() int { return s.root.NumExamples() }

// NumBlocks returns the number of blocks of the suite's root context.
func (s *Suite[E]) NumBlocks() int { return s.root.NumBlocks() }

// IsEmpty returns true iff the suite's root context has no blocks.
func (s *Suite[E]) IsEmpty() bool { return s.root.IsEmpty() }

// cloner returns the function duplicating environments of s.
func (s *Suite[E]) cloner() func(E) E {
	if s.clone != nil {
		return s.clone
	}
	if _, ok := interface{}(s.env).(Cloner[E]); ok {
		return func(env E) E {
			return interface{}(env).(Cloner[E]).Clone()
		}
	}
	if t := reflect.TypeOf(&s.env).Elem(); sharesMemory(t) {
		panic(fmt.Sprintf("gospec: suite %s: copies of environment %v "+
			"share memory; implement Cloner or use WithClone", s.header, t))
	}
	return func(env E) E { return env }
}

// sharesMemory reports if a value copy of a value of given type shares
// memory with the copied value.
func sharesMemory(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	case reflect.Array:
		return t.Len() > 0 && sharesMemory(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if sharesMemory(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
