// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

// SetExit replaces the function a runner terminates the process with.
func (r *Runner) SetExit(exit func(int)) *Runner {
	r.exit = exit
	return r
}

// Normalize converts given example body like registering it would.
func Normalize[E any](fn interface{}) func(*E) Result {
	return normalize[E](fn)
}

// Evaluate normalizes and evaluates given example body on given
// environment.
func Evaluate[E any](fn interface{}, env *E) (Result, interface{}) {
	return evaluate(normalize[E](fn), env)
}

// ErrGoexit is the panic value reported for a body calling
// runtime.Goexit.
var ErrGoexit = errGoexit

// EffectiveWorkers returns the number of workers a run with c uses.
func (c Configuration) EffectiveWorkers() int { return c.workers() }
