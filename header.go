// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

import "fmt"

// SuiteLabel is the cosmetic kind of a suite header.  The labels are
// pure aliases, i.e. they don't change how a suite is run.
type SuiteLabel uint8

const (
	LabelSuite SuiteLabel = iota
	LabelDescribe
	LabelGiven
)

func (l SuiteLabel) String() string {
	switch l {
	case LabelDescribe:
		return "Describe"
	case LabelGiven:
		return "Given"
	default:
		return "Suite"
	}
}

// ContextLabel is the cosmetic kind of a context header.
type ContextLabel uint8

const (
	LabelContext ContextLabel = iota
	LabelSpecify
	LabelWhen
)

func (l ContextLabel) String() string {
	switch l {
	case LabelSpecify:
		return "Specify"
	case LabelWhen:
		return "When"
	default:
		return "Context"
	}
}

// ExampleLabel is the cosmetic kind of an example header.
type ExampleLabel uint8

const (
	LabelIt ExampleLabel = iota
	LabelExample
	LabelThen
)

func (l ExampleLabel) String() string {
	switch l {
	case LabelExample:
		return "Example"
	case LabelThen:
		return "Then"
	default:
		return "It"
	}
}

// SuiteHeader labels a suite.
type SuiteHeader struct {
	Label SuiteLabel
	Name  string
}

// String renders a header as its label followed by its quoted name,
// e.g. Describe "a set".
func (h SuiteHeader) String() string {
	return fmt.Sprintf("%s %q", h.Label, h.Name)
}

// ContextHeader labels a named context.
type ContextHeader struct {
	Label ContextLabel
	Name  string
}

func (h ContextHeader) String() string {
	return fmt.Sprintf("%s %q", h.Label, h.Name)
}

// ExampleHeader labels an example.
type ExampleHeader struct {
	Label ExampleLabel
	Name  string
}

func (h ExampleHeader) String() string {
	return fmt.Sprintf("%s %q", h.Label, h.Name)
}
