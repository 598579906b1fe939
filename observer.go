// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

// Observer is notified by a Runner about entering and leaving the nodes
// of a suite's tree.  Anonymous scopes are not reported.  An observer is
// called on whichever goroutine evaluates a node, i.e. with a parallel
// configuration it is called concurrently and must guard its own state.
// Embed NopObserver to implement only the needed methods:
//
//	type counter struct {
//	    gospec.NopObserver
//	    n atomic.Int32
//	}
//
//	func (c *counter) ExitExample(
//	    gospec.ExampleHeader, gospec.ExampleReport,
//	) {
//	    c.n.Add(1)
//	}
type Observer interface {
	EnterSuite(SuiteHeader)
	ExitSuite(SuiteHeader, SuiteReport)
	EnterContext(ContextHeader)
	ExitContext(ContextHeader, ContextReport)
	EnterExample(ExampleHeader)
	ExitExample(ExampleHeader, ExampleReport)
}

// NopObserver implements Observer ignoring all notifications.
type NopObserver struct{}

func (NopObserver) EnterSuite(SuiteHeader)                   {}
func (NopObserver) ExitSuite(SuiteHeader, SuiteReport)       {}
func (NopObserver) EnterContext(ContextHeader)               {}
func (NopObserver) ExitContext(ContextHeader, ContextReport) {}
func (NopObserver) EnterExample(ExampleHeader)               {}
func (NopObserver) ExitExample(ExampleHeader, ExampleReport) {}

// observers broadcasts notifications to its observers in registration
// order.
type observers []Observer

// Observers combines given observers into one observer notifying them in
// given order.
func Observers(oo ...Observer) Observer {
	return observers(append([]Observer(nil), oo...))
}

func (oo observers) EnterSuite(h SuiteHeader) {
	for _, o := range oo {
		o.EnterSuite(h)
	}
}

func (oo observers) ExitSuite(h SuiteHeader, r SuiteReport) {
	for _, o := range oo {
		o.ExitSuite(h, r)
	}
}

func (oo observers) EnterContext(h ContextHeader) {
	for _, o := range oo {
		o.EnterContext(h)
	}
}

func (oo observers) ExitContext(h ContextHeader, r ContextReport) {
	for _, o := range oo {
		o.ExitContext(h, r)
	}
}

func (oo observers) EnterExample(h ExampleHeader) {
	for _, o := range oo {
		o.EnterExample(h)
	}
}

func (oo observers) ExitExample(h ExampleHeader, r ExampleReport) {
	for _, o := range oo {
		o.ExitExample(h, r)
	}
}
