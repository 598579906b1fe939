// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logger renders the runs of gospec suites in a human readable
// way.  Its renderers are gospec.Observer implementations:
//
//	r := gospec.NewRunner(cfg, logger.New(os.Stdout, cfg.Parallel))
//	r.RunOrExit(suite)
//
// A Serial logger writes the tree of a suite while it is run and is
// meant for serial configurations.  A Replay logger waits for a suite to
// be finished and then writes its report as a Serial logger would have,
// i.e. its output is not scrambled by concurrently evaluated blocks.
//
// Errors writing the output never affect a run; they are logged to the
// diagnostics logger which defaults to a no-op logger.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"

	"github.com/slukits/gospec"
)

// Option configures a logger.
type Option func(*options)

type options struct {
	colors bool
	log    *zap.Logger
}

func newOptions(oo []Option) options {
	opts := options{log: zap.NewNop()}
	for _, o := range oo {
		o(&opts)
	}
	return opts
}

// WithColors switches on colored result flags.
func WithColors(colors bool) Option {
	return func(o *options) { o.colors = colors }
}

// WithDiagnostics sets the logger output errors are reported to.
func WithDiagnostics(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// New returns a Replay logger for parallel runs and a Serial logger
// otherwise.
func New(w io.Writer, parallel bool, oo ...Option) gospec.Observer {
	if parallel {
		return NewReplay(w, oo...)
	}
	return NewSerial(w, oo...)
}

// Serial writes a suite's tree as it is run:
//
//	tests:
//
//	Given "a set"
//	  When "adding an item"
//	    Then "it has one item" ... ok
//
//	duration: 0.001s.
//
//	test result: ok. 1 passed; 0 failed; 0 ignored
type Serial struct {
	opts options

	mutex sync.Mutex
	w     io.Writer
	level int
}

// NewSerial creates a serial logger writing to given writer.
func NewSerial(w io.Writer, oo ...Option) *Serial {
	return &Serial{w: w, opts: newOptions(oo)}
}

// access runs given writer with exclusive access to the logger's state
// and reports a returned error to the diagnostics logger.
func (s *Serial) access(write func(w io.Writer) error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := write(s.w); err != nil {
		s.opts.log.Error("gospec logger: write", zap.Error(err))
	}
}

func padding(level int) string { return strings.Repeat("  ", level) }

func (s *Serial) EnterSuite(h gospec.SuiteHeader) {
	s.access(func(w io.Writer) error {
		s.level++
		_, err := fmt.Fprintf(w, "\ntests:\n\n%s%s\n", padding(s.level-1), h)
		return err
	})
}

func (s *Serial) ExitSuite(h gospec.SuiteHeader, r gospec.SuiteReport) {
	s.access(func(w io.Writer) error {
		s.level--
		if err := s.writeFailures(w, r); err != nil {
			return err
		}
		return s.writeSuffix(w, r)
	})
}

func (s *Serial) EnterContext(h gospec.ContextHeader) {
	s.access(func(w io.Writer) error {
		s.level++
		_, err := fmt.Fprintf(w, "%s%s\n", padding(s.level-1), h)
		return err
	})
}

func (s *Serial) ExitContext(gospec.ContextHeader, gospec.ContextReport) {
	s.access(func(io.Writer) error {
		s.level--
		return nil
	})
}

func (s *Serial) EnterExample(h gospec.ExampleHeader) {
	s.access(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s%s ... ", padding(s.level), h)
		return err
	})
}

func (s *Serial) ExitExample(_ gospec.ExampleHeader, r gospec.ExampleReport) {
	s.access(func(w io.Writer) error {
		_, err := fmt.Fprintln(w, s.flag(r))
		return err
	})
}

// flag returns the result flag of given report.
func (s *Serial) flag(r gospec.Report) string {
	switch {
	case r.IsFailure():
		return s.colorize(text.Colors{text.FgRed, text.Bold}, "FAILED")
	case r.IsSuccess():
		return s.colorize(text.Colors{text.FgGreen}, "ok")
	default:
		return s.colorize(text.Colors{text.FgYellow}, "ignored")
	}
}

func (s *Serial) colorize(cc text.Colors, str string) string {
	if !s.opts.colors {
		return str
	}
	return cc.Sprint(str)
}

func (s *Serial) writeFailures(w io.Writer, r gospec.SuiteReport) error {
	ff := r.Failures()
	if len(ff) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nfailures:\n\n%s\n", r.Header()); err != nil {
		return err
	}
	for _, f := range ff {
		level := 1
		for _, h := range f.Path {
			if _, err := fmt.Fprintf(w, "%s%s\n", padding(level), h); err != nil {
				return err
			}
			level++
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", padding(level), f.Header); err != nil {
			return err
		}
		if f.Result.Message == "" {
			continue
		}
		for _, line := range strings.Split(f.Result.Message, "\n") {
			if _, err := fmt.Fprintf(w, "%s%s\n", padding(level+1), line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Serial) writeSuffix(w io.Writer, r gospec.SuiteReport) error {
	if _, err := fmt.Fprintf(w, "\nduration: %s.\n", FormatDuration(r.Duration())); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\ntest result: %s. %d passed; %d failed; %d ignored\n",
		s.flag(r), r.Passed(), r.Failed(), r.Ignored()); err != nil {
		return err
	}
	if r.IsFailure() {
		_, err := fmt.Fprintf(w, "\n%s: test failed\n",
			s.colorize(text.Colors{text.FgRed, text.Bold}, "error"))
		return err
	}
	return nil
}

// FormatDuration formats given duration with millisecond precision as
// "1.005s", "2m 1.005s" or "1h 2m 1.005s".
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	h, ms := ms/int64(time.Hour/time.Millisecond), ms%int64(time.Hour/time.Millisecond)
	m, ms := ms/int64(time.Minute/time.Millisecond), ms%int64(time.Minute/time.Millisecond)
	sec, ms := ms/1000, ms%1000
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %d.%03ds", h, m, sec, ms)
	case m > 0:
		return fmt.Sprintf("%dm %d.%03ds", m, sec, ms)
	default:
		return fmt.Sprintf("%d.%03ds", sec, ms)
	}
}

// Replay ignores all notifications but the one about a finished suite
// whose report it then replays to a Serial logger.
type Replay struct {
	gospec.NopObserver
	serial *Serial
}

// NewReplay creates a replay logger writing to given writer.
func NewReplay(w io.Writer, oo ...Option) *Replay {
	return &Replay{serial: NewSerial(w, oo...)}
}

func (r *Replay) ExitSuite(h gospec.SuiteHeader, report gospec.SuiteReport) {
	r.serial.EnterSuite(h)
	r.replayContext(nil, report.Context())
	r.serial.ExitSuite(h, report)
}

func (r *Replay) replayContext(h *gospec.ContextHeader, report gospec.ContextReport) {
	if h != nil {
		r.serial.EnterContext(*h)
	}
	for _, b := range report.Blocks() {
		switch b := b.(type) {
		case *gospec.ContextBlockReport:
			r.replayContext(b.Header, b.Report)
		case *gospec.ExampleBlockReport:
			r.serial.EnterExample(b.Header)
			r.serial.ExitExample(b.Header, b.Report)
		}
	}
	if h != nil {
		r.serial.ExitContext(*h, report)
	}
}
