// Package gospec runs trees of examples grouped by nested contexts
// sharing an environment which is set up and torn down by hooks.
//
// A suite is built once with a small declarative API and handed to a
// Runner:
//
//	type env struct{ set map[int]bool }
//
//	func (e env) Clone() env { ... } // deep copy of set
//
//	suite := gospec.Given("a set", env{set: map[int]bool{}},
//	    func(ctx *gospec.Context[env]) {
//	        ctx.Then("it is empty", func(e *env) bool {
//	            return len(e.set) == 0
//	        })
//	        ctx.When("adding an item", func(ctx *gospec.Context[env]) {
//	            ctx.BeforeAll(func(e *env) { e.set[42] = true })
//	            ctx.Then("it has one item", func(e *env, a *gospec.A) {
//	                a.Eq(1, len(e.set))
//	            })
//	        })
//	    })
//
//	gospec.NewRunner(gospec.DefaultConfiguration()).RunOrExit(suite)
//
// The runner visits a context by running its BeforeAll hooks on the
// context's environment.  Then each block of the context, i.e. each
// child context or example, is evaluated on its own copy of that
// environment: the copy is made, the context's BeforeEach hooks are run
// on it, the block is evaluated and the AfterEach hooks are run on the
// copy.  Finally the AfterAll hooks are run on the context's
// environment.  Hence a child context sees the effects of its parents'
// BeforeAll hooks while siblings never see each other's changes.  Hooks
// of one context always run in the order they were registered.
//
// With a parallel configuration the blocks of a context are evaluated
// concurrently while their reports keep the declaration order.  An
// environment whose go value copy shares memory, e.g. maps, must
// implement Cloner or be given a clone function by Suite.WithClone.
//
// An example passes or fails depending on the shape of its body (see
// Context.Example).  A panicking body fails its example without
// affecting any other example.  Failures are never errors: they are
// folded into the returned SuiteReport which counts passed, failed and
// ignored examples.  RunOrExit additionally terminates the process with
// ExitStatus if a run failed.
//
// Observers are notified when the runner enters and leaves suites,
// contexts and examples; the logger package provides human readable
// renderers built on them.  RunT bridges a suite into a go test.
package gospec
