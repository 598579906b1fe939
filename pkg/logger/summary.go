// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"io"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/slukits/gospec"
)

// Summary writes a table of given reports' counts to given writer, one
// row per suite and a totals footer:
//
//	+-----------------+--------+--------+---------+----------+
//	| SUITE           | PASSED | FAILED | IGNORED | DURATION |
//	+-----------------+--------+--------+---------+----------+
//	| Given "a set"   |      3 |      0 |       0 |   0.001s |
//	+-----------------+--------+--------+---------+----------+
//	| TOTAL           |      3 |      0 |       0 |   0.001s |
//	+-----------------+--------+--------+---------+----------+
func Summary(w io.Writer, rr ...gospec.SuiteReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleDefault)
	t.AppendHeader(table.Row{
		"Suite", "Passed", "Failed", "Ignored", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	var total struct{ passed, failed, ignored int }
	var duration time.Duration
	for _, r := range rr {
		t.AppendRow(table.Row{
			r.Header().String(), r.Passed(), r.Failed(), r.Ignored(),
			FormatDuration(r.Duration()),
		})
		total.passed += r.Passed()
		total.failed += r.Failed()
		total.ignored += r.Ignored()
		duration += r.Duration()
	}
	t.AppendFooter(table.Row{
		"Total", total.passed, total.failed, total.ignored,
		FormatDuration(duration),
	})
	t.Render()
}

// Summarizer is an observer writing the Summary of each finished suite.
// Registered after a renderer its table follows the rendered run and
// precedes a RunOrExit's exit.
type Summarizer struct {
	gospec.NopObserver
	mutex sync.Mutex
	w     io.Writer
}

// NewSummarizer returns a summarizer writing to given writer.
func NewSummarizer(w io.Writer) *Summarizer {
	return &Summarizer{w: w}
}

// ExitSuite writes the summary of given report.
func (s *Summarizer) ExitSuite(_ gospec.SuiteHeader, r gospec.SuiteReport) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	Summary(s.w, r)
}
