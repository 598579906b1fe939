// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/slukits/gospec"
)

type set struct {
	items     map[int]bool
	lenBefore int
}

func (s set) Clone() set {
	items := make(map[int]bool, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	return set{items: items, lenBefore: s.lenBefore}
}

func (s *set) add(i int) {
	s.lenBefore = len(s.items)
	s.items[i] = true
}

// panicMsg is the panic value of the sample suite's failing example.
const panicMsg = "some reason for failure"

func setSuite() *gospec.Suite[set] {
	return gospec.Given("a set", set{items: map[int]bool{}},
		func(ctx *gospec.Context[set]) {
			ctx.When("not having added any items", func(ctx *gospec.Context[set]) {
				ctx.Then("it is empty", func(s *set) bool {
					return len(s.items) == 0
				})
			})

			ctx.When("adding an new item", func(ctx *gospec.Context[set]) {
				ctx.BeforeAll(func(s *set) { s.add(42) })

				ctx.Then("it is not empty any more", func(s *set, a *gospec.A) {
					a.Not().Eq(0, len(s.items))
				})
				ctx.Then("its len increases by 1", func(s *set, a *gospec.A) {
					a.Eq(s.lenBefore+1, len(s.items))
				})

				ctx.When("adding it again", func(ctx *gospec.Context[set]) {
					ctx.BeforeAll(func(s *set) { s.add(42) })

					ctx.Then("its len remains the same", func(s *set, a *gospec.A) {
						a.Eq(s.lenBefore, len(s.items))
					})
				})
			})

			ctx.When("returning to outer context", func(ctx *gospec.Context[set]) {
				ctx.Then("it is still empty", func(s *set) bool {
					return len(s.items) == 0
				})
			})

			ctx.Then("a panic fails", func(*set) { panic(panicMsg) })
		})
}
