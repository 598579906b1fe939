// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

import (
	"strings"
	"testing"
)

// RunT runs given suite as part of a go test and reports each failed
// example as an error of given test, e.g.:
//
//	func TestSet(t *testing.T) {
//	    gospec.RunT(t, gospec.Describe("a set", set{},
//	        func(ctx *gospec.Context[set]) {
//	            ctx.It("is empty", func(env *set) bool {
//	                return env.Len() == 0
//	            })
//	        }), gospec.DefaultConfiguration())
//	}
//
// RunT never exits the process regardless of given configuration.
// Given observers are notified as usual.
func RunT(
	t testing.TB, s Runnable, cfg Configuration, oo ...Observer,
) SuiteReport {
	t.Helper()
	r := NewRunner(cfg.WithExitOnFailure(false), oo...)
	report := r.Run(s)
	for _, f := range report.Failures() {
		t.Errorf("%s: %s", failurePath(report.Header(), f), f.Result.Message)
	}
	return report
}

// Run runs given suite with the default configuration as part of a go
// test (see RunT).
func Run(t testing.TB, s Runnable, oo ...Observer) SuiteReport {
	t.Helper()
	return RunT(t, s, DefaultConfiguration(), oo...)
}

func failurePath(s SuiteHeader, f FailedExample) string {
	ss := []string{s.String()}
	for _, h := range f.Path {
		ss = append(ss, h.String())
	}
	ss = append(ss, f.Header.String())
	return strings.Join(ss, " / ")
}
