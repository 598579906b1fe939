// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

import (
	"context"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Runnable is implemented by every *Suite, i.e. a Runner can run suites
// of any environment type.
type Runnable interface {
	run(*Runner) SuiteReport
}

// Runner evaluates the examples of suites.  A Runner may be used for
// several runs; it remembers if any of them failed (see RunOrExit).
type Runner struct {
	cfg       Configuration
	observers observers
	log       *zap.Logger
	exit      func(int)

	mutex  sync.Mutex
	failed bool
}

// NewRunner creates a runner with given configuration notifying given
// observers in given order.
func NewRunner(cfg Configuration, oo ...Observer) *Runner {
	return &Runner{
		cfg:       cfg,
		observers: append(observers(nil), oo...),
		log:       zap.NewNop(),
		exit:      os.Exit,
	}
}

// SetLogger sets the logger for a runner's diagnostics, e.g. recovered
// panics of example bodies.  It defaults to a no-op logger.
func (r *Runner) SetLogger(l *zap.Logger) *Runner {
	if l == nil {
		l = zap.NewNop()
	}
	r.log = l
	return r
}

// Configuration returns a runner's configuration.
func (r *Runner) Configuration() Configuration { return r.cfg }

// Failed returns true iff any run of a runner had a failing example.
func (r *Runner) Failed() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.failed
}

// Run evaluates all examples of given suite and returns the report of
// the evaluation.  A failing or panicking example never stops the
// evaluation of any other example.  A panicking hook on the other hand
// is not recovered and propagates to the caller of Run.  In a serial
// run it stops the run at once.  In a parallel run the siblings of the
// panicking block are finished first and the hook's panic value is
// re-raised afterwards; its original stack trace is logged at error
// level with the message "hook panicked".
func (r *Runner) Run(s Runnable) SuiteReport {
	r.log.Debug("run suite",
		zap.Bool("parallel", r.cfg.Parallel),
		zap.Int("workers", r.cfg.workers()))
	report := s.run(r)
	r.mutex.Lock()
	r.failed = r.failed || report.IsFailure()
	r.mutex.Unlock()
	r.log.Debug("suite finished",
		zap.Stringer("suite", report.Header()),
		zap.Int("passed", report.Passed()),
		zap.Int("failed", report.Failed()),
		zap.Int("ignored", report.Ignored()),
		zap.Duration("duration", report.Duration()))
	return report
}

// RunOrExit runs given suite (see Run) and terminates the process with
// ExitStatus if any run of r failed and r is configured to exit on
// failure.
func (r *Runner) RunOrExit(s Runnable) SuiteReport {
	report := r.Run(s)
	if r.cfg.ExitOnFailure && r.Failed() {
		r.log.Debug("exit on failure", zap.Int("status", ExitStatus))
		r.exit(ExitStatus)
	}
	return report
}

func (s *Suite[E]) run(r *Runner) SuiteReport {
	workers := r.cfg.workers()
	v := &visitor[E]{
		observers: r.observers,
		log:       r.log,
		clone:     s.cloner(),
		parallel:  workers > 1,
		sem:       semaphore.NewWeighted(int64(workers)),
	}
	return v.suite(s)
}

// visitor walks the tree of a suite with environments of type E.
type visitor[E any] struct {
	observers observers
	log       *zap.Logger
	clone     func(E) E
	parallel  bool

	// sem bounds the user code running at the same time.  It is only
	// held while hooks, clones or bodies run, never while a context
	// waits for its blocks.
	sem *semaphore.Weighted
}

// work runs given function holding a worker slot.
func (v *visitor[E]) work(fn func()) {
	_ = v.sem.Acquire(context.Background(), 1)
	defer v.sem.Release(1)
	fn()
}

func (v *visitor[E]) hooks(hh []Hook[E], env *E) {
	if len(hh) == 0 {
		return
	}
	v.work(func() {
		for _, h := range hh {
			h(env)
		}
	})
}

func (v *visitor[E]) suite(s *Suite[E]) SuiteReport {
	if v.parallel {
		defer v.unwrap()
	}
	var env E
	v.work(func() { env = v.clone(s.env) })
	v.observers.EnterSuite(s.header)
	report := NewSuiteReport(s.header, v.context(s.root, &env))
	v.observers.ExitSuite(s.header, report)
	return report
}

func (v *visitor[E]) context(c *Context[E], env *E) ContextReport {
	if c.header != nil {
		v.observers.EnterContext(*c.header)
	}
	v.hooks(c.beforeAll, env)
	start := time.Now()
	rr := v.blocks(c, env)
	duration := time.Since(start)
	v.hooks(c.afterAll, env)
	report := NewContextReport(rr, duration)
	if c.header != nil {
		v.observers.ExitContext(*c.header, report)
	}
	return report
}

// hookPanic carries a panic of a concurrently evaluated block back to
// the goroutine waiting for it.
type hookPanic struct {
	value interface{}
	stack []byte
}

// unwrap re-raises the value of a recovered hookPanic after logging its
// stack.  Any other panic passes unchanged.
func (v *visitor[E]) unwrap() {
	r := recover()
	if r == nil {
		return
	}
	p, ok := r.(*hookPanic)
	if !ok {
		panic(r)
	}
	v.log.Error("hook panicked",
		zap.Any("panic", p.value),
		zap.ByteString("stack", p.stack))
	panic(p.value)
}

func (v *visitor[E]) blocks(c *Context[E], env *E) []BlockReport {
	rr := make([]BlockReport, len(c.blocks))
	if !v.parallel || len(c.blocks) < 2 {
		for i, b := range c.blocks {
			rr[i] = v.block(c, b, env)
		}
		return rr
	}

	pp := make([]*hookPanic, len(c.blocks))
	var eg errgroup.Group
	for i, b := range c.blocks {
		i, b := i, b
		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					p, ok := r.(*hookPanic)
					if !ok {
						p = &hookPanic{value: r, stack: debug.Stack()}
					}
					pp[i] = p
				}
			}()
			rr[i] = v.block(c, b, env)
			return nil
		})
	}
	_ = eg.Wait()
	for _, p := range pp {
		if p != nil {
			panic(p)
		}
	}
	return rr
}

// block evaluates given block of given context on its own copy of given
// environment wrapped by the context's before-each and after-each hooks.
func (v *visitor[E]) block(c *Context[E], b Block[E], env *E) BlockReport {
	var child E
	v.work(func() { child = v.clone(*env) })
	v.hooks(c.beforeEach, &child)
	var report BlockReport
	switch b := b.(type) {
	case *Example[E]:
		report = &ExampleBlockReport{
			Header: b.header, Report: v.example(b, &child)}
	case *Context[E]:
		report = &ContextBlockReport{
			Header: b.header, Report: v.context(b, &child)}
	}
	v.hooks(c.afterEach, &child)
	return report
}

func (v *visitor[E]) example(e *Example[E], env *E) ExampleReport {
	v.observers.EnterExample(e.header)
	var (
		res       Result
		recovered interface{}
		duration  time.Duration
	)
	v.work(func() {
		start := time.Now()
		res, recovered = evaluate(e.body, env)
		duration = time.Since(start)
	})
	if recovered != nil {
		v.log.Debug("example panicked",
			zap.Stringer("example", e.header),
			zap.String("message", res.Message))
	}
	report := NewExampleReport(res, duration)
	v.observers.ExitExample(e.header, report)
	return report
}
