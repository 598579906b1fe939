// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fx provides gospec test-fixtures: suites, environments and
// observers whose logs can be evaluated after a suite has been run.
//
// Each fixture environment carries a pointer to a FixtureLog which is
// shared by all clones of the environment, i.e. every hook and body
// run during a suite's evaluation appends to the same log:
//
//	log := &fx.FixtureLog{}
//	gospec.NewRunner(cfg).Run(fx.Hooks(log))
//	if d := cmp.Diff(fx.HooksSerialLog, log.Logs()); d != "" {
//	    t.Errorf("unexpected hook order (-exp +got):\n%s", d)
//	}
package fx

import (
	"fmt"
	"strings"
	"sync"

	"github.com/slukits/gospec"
)

// FixtureLog provides concurrency save logging for fixtures.  A
// FixtureLog mustn't be copied once it has been used.
type FixtureLog struct {
	mutex sync.Mutex
	logs  []string
}

// Log appends given arguments as one entry to the log.
func (fl *FixtureLog) Log(args ...interface{}) {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()
	fl.logs = append(fl.logs, fmt.Sprint(args...))
}

// Logs returns a copy of the logged entries in the order they were
// logged.
func (fl *FixtureLog) Logs() []string {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()
	return append([]string(nil), fl.logs...)
}

// Count returns how often given entry was logged.
func (fl *FixtureLog) Count(entry string) int {
	n := 0
	for _, l := range fl.Logs() {
		if l == entry {
			n++
		}
	}
	return n
}

// String joins the logged entries separated by ", ".
func (fl *FixtureLog) String() string {
	return strings.Join(fl.Logs(), ", ")
}

// Recorder is an observer logging each notification it receives, e.g.
//
//	enter suite Given "a set"
//	enter example Then "it is empty"
//	exit example Then "it is empty": success
//	exit suite Given "a set": 1 passed 0 failed 0 ignored
type Recorder struct{ FixtureLog }

func (r *Recorder) EnterSuite(h gospec.SuiteHeader) {
	r.Log("enter suite ", h)
}

func (r *Recorder) ExitSuite(h gospec.SuiteHeader, rp gospec.SuiteReport) {
	r.Log(fmt.Sprintf("exit suite %s: %d passed %d failed %d ignored",
		h, rp.Passed(), rp.Failed(), rp.Ignored()))
}

func (r *Recorder) EnterContext(h gospec.ContextHeader) {
	r.Log("enter context ", h)
}

func (r *Recorder) ExitContext(h gospec.ContextHeader, rp gospec.ContextReport) {
	r.Log(fmt.Sprintf("exit context %s: %d passed %d failed %d ignored",
		h, rp.Passed(), rp.Failed(), rp.Ignored()))
}

func (r *Recorder) EnterExample(h gospec.ExampleHeader) {
	r.Log("enter example ", h)
}

func (r *Recorder) ExitExample(h gospec.ExampleHeader, rp gospec.ExampleReport) {
	r.Log(fmt.Sprintf("exit example %s: %s", h, rp.Result().Outcome))
}
