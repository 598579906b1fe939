// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

import (
	"time"

	"golang.org/x/exp/slices"
)

// Report is implemented by the reports a Runner produces.  Composite
// reports fold their counts over their children, i.e. for every report
// Passed+Failed+Ignored equals the sum of these counts of its children.
type Report interface {
	// IsSuccess is true iff all examples of a report passed.
	IsSuccess() bool
	// IsFailure is true iff at least one example of a report failed.
	IsFailure() bool
	Passed() int
	Failed() int
	Ignored() int
	Duration() time.Duration
}

// ExampleReport reports the evaluation of an example.
type ExampleReport struct {
	result   Result
	duration time.Duration
}

// NewExampleReport creates an example report of given result and
// duration.
func NewExampleReport(r Result, d time.Duration) ExampleReport {
	return ExampleReport{result: r, duration: d}
}

// Result returns the result of the reported example.
func (r ExampleReport) Result() Result { return r.result }

func (r ExampleReport) IsSuccess() bool         { return r.result.IsSuccess() }
func (r ExampleReport) IsFailure() bool         { return r.result.IsFailure() }
func (r ExampleReport) Duration() time.Duration { return r.duration }

func (r ExampleReport) Passed() int {
	if r.result.IsSuccess() {
		return 1
	}
	return 0
}

func (r ExampleReport) Failed() int {
	if r.result.IsFailure() {
		return 1
	}
	return 0
}

func (r ExampleReport) Ignored() int {
	if r.result.IsIgnored() {
		return 1
	}
	return 0
}

// BlockReport is either a *ContextBlockReport or an
// *ExampleBlockReport.
type BlockReport interface {
	Report
	blockReport()
}

// ContextBlockReport reports a context block.  Header is nil iff the
// context is an anonymous scope.
type ContextBlockReport struct {
	Header *ContextHeader
	Report ContextReport
}

func (*ContextBlockReport) blockReport() {}

func (r *ContextBlockReport) IsSuccess() bool         { return r.Report.IsSuccess() }
func (r *ContextBlockReport) IsFailure() bool         { return r.Report.IsFailure() }
func (r *ContextBlockReport) Passed() int             { return r.Report.Passed() }
func (r *ContextBlockReport) Failed() int             { return r.Report.Failed() }
func (r *ContextBlockReport) Ignored() int            { return r.Report.Ignored() }
func (r *ContextBlockReport) Duration() time.Duration { return r.Report.Duration() }

// ExampleBlockReport reports an example block.
type ExampleBlockReport struct {
	Header ExampleHeader
	Report ExampleReport
}

func (*ExampleBlockReport) blockReport() {}

func (r *ExampleBlockReport) IsSuccess() bool         { return r.Report.IsSuccess() }
func (r *ExampleBlockReport) IsFailure() bool         { return r.Report.IsFailure() }
func (r *ExampleBlockReport) Passed() int             { return r.Report.Passed() }
func (r *ExampleBlockReport) Failed() int             { return r.Report.Failed() }
func (r *ExampleBlockReport) Ignored() int            { return r.Report.Ignored() }
func (r *ExampleBlockReport) Duration() time.Duration { return r.Report.Duration() }

// ContextReport reports the evaluation of a context.  Its block reports
// are in the declaration order of the context's blocks regardless of the
// order they were evaluated in.
type ContextReport struct {
	subReports []BlockReport
	duration   time.Duration
}

// NewContextReport creates a context report from given block reports and
// duration.
func NewContextReport(rr []BlockReport, d time.Duration) ContextReport {
	return ContextReport{subReports: rr, duration: d}
}

// Blocks returns the reports of a context's blocks.
func (r ContextReport) Blocks() []BlockReport {
	return slices.Clone(r.subReports)
}

func (r ContextReport) IsSuccess() bool {
	for _, sr := range r.subReports {
		if !sr.IsSuccess() {
			return false
		}
	}
	return true
}

func (r ContextReport) IsFailure() bool {
	for _, sr := range r.subReports {
		if sr.IsFailure() {
			return true
		}
	}
	return false
}

func (r ContextReport) Passed() int {
	return r.fold(func(sr BlockReport) int { return sr.Passed() })
}

func (r ContextReport) Failed() int {
	return r.fold(func(sr BlockReport) int { return sr.Failed() })
}

func (r ContextReport) Ignored() int {
	return r.fold(func(sr BlockReport) int { return sr.Ignored() })
}

func (r ContextReport) Duration() time.Duration { return r.duration }

func (r ContextReport) fold(count func(BlockReport) int) int {
	n := 0
	for _, sr := range r.subReports {
		n += count(sr)
	}
	return n
}

// SuiteReport reports the evaluation of a suite.
type SuiteReport struct {
	header  SuiteHeader
	context ContextReport
}

// NewSuiteReport creates the report of the suite with given header from
// given report of its root context.
func NewSuiteReport(h SuiteHeader, r ContextReport) SuiteReport {
	return SuiteReport{header: h, context: r}
}

// Header returns the header of the reported suite.
func (r SuiteReport) Header() SuiteHeader { return r.header }

// Context returns the report of the suite's root context.
func (r SuiteReport) Context() ContextReport { return r.context }

func (r SuiteReport) IsSuccess() bool         { return r.context.IsSuccess() }
func (r SuiteReport) IsFailure() bool         { return r.context.IsFailure() }
func (r SuiteReport) Passed() int             { return r.context.Passed() }
func (r SuiteReport) Failed() int             { return r.context.Failed() }
func (r SuiteReport) Ignored() int            { return r.context.Ignored() }
func (r SuiteReport) Duration() time.Duration { return r.context.Duration() }

// FailedExample is a failed example together with the headers of the
// named contexts leading to it.
type FailedExample struct {
	Path   []ContextHeader
	Header ExampleHeader
	Result Result
}

// Failures returns the failed examples of a suite report in declaration
// order.
func (r SuiteReport) Failures() []FailedExample {
	return appendFailures(nil, nil, r.context)
}

func appendFailures(
	ff []FailedExample, path []ContextHeader, r ContextReport,
) []FailedExample {
	for _, sr := range r.subReports {
		if !sr.IsFailure() {
			continue
		}
		switch sr := sr.(type) {
		case *ExampleBlockReport:
			ff = append(ff, FailedExample{
				Path:   slices.Clone(path),
				Header: sr.Header,
				Result: sr.Report.Result(),
			})
		case *ContextBlockReport:
			p := path
			if sr.Header != nil {
				p = append(slices.Clone(path), *sr.Header)
			}
			ff = appendFailures(ff, p, sr.Report)
		}
	}
	return ff
}
