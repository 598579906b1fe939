// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec_test

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/slukits/gospec"
)

type env struct{ n int }

func Test_a_body_without_return_value_succeeds_unless_it_panics(t *testing.T) {
	t.Parallel()
	called := false
	res, recovered := gospec.Evaluate(func(e *env) { called = true }, &env{})
	if !called || !res.IsSuccess() || recovered != nil {
		t.Errorf("expected called successful body; got: %v, %v, %v",
			called, res, recovered)
	}
}

func Test_a_bool_body_fails_iff_it_returns_false(t *testing.T) {
	t.Parallel()
	if res, _ := gospec.Evaluate(func(*env) bool { return true }, &env{}); !res.IsSuccess() {
		t.Errorf("expected success; got: %v", res)
	}
	res, recovered := gospec.Evaluate(func(*env) bool { return false }, &env{})
	if !res.IsFailure() || res.Message != gospec.FalseMsg {
		t.Errorf("expected failure %q; got: %v", gospec.FalseMsg, res)
	}
	if recovered != nil {
		t.Errorf("expected no recovered panic; got: %v", recovered)
	}
}

func Test_an_error_body_fails_with_the_detailed_error_message(t *testing.T) {
	t.Parallel()
	if res, _ := gospec.Evaluate(func(*env) error { return nil }, &env{}); !res.IsSuccess() {
		t.Errorf("expected success; got: %v", res)
	}
	err := pkgerrors.Wrap(errors.New("cause"), "context")
	res, _ := gospec.Evaluate(func(*env) error { return err }, &env{})
	if !res.IsFailure() {
		t.Fatalf("expected failure; got: %v", res)
	}
	if res.Message != fmt.Sprintf("%+v", err) {
		t.Errorf("expected detailed message %+v; got: %s", err, res.Message)
	}
	if !strings.HasPrefix(res.Message, "cause") {
		t.Errorf("expected message to start with the cause; got: %s",
			res.Message)
	}
}

func Test_a_result_body_is_reported_as_returned(t *testing.T) {
	t.Parallel()
	for _, exp := range []gospec.Result{
		gospec.Succeeded(), gospec.Failed("msg"), gospec.IgnoredResult(),
	} {
		exp := exp
		res, _ := gospec.Evaluate(func(*env) gospec.Result { return exp }, &env{})
		if res != exp {
			t.Errorf("expected %v; got: %v", exp, res)
		}
	}
}

func Test_an_assertion_body_fails_with_its_failed_assertions(t *testing.T) {
	t.Parallel()
	res, _ := gospec.Evaluate(func(e *env, a *gospec.A) {
		a.True(e.n == 0)
	}, &env{})
	if !res.IsSuccess() {
		t.Errorf("expected success; got: %v", res)
	}
	res, _ = gospec.Evaluate(func(e *env, a *gospec.A) {
		a.True(false)
		a.False(true)
	}, &env{})
	if !res.IsFailure() {
		t.Fatalf("expected failure; got: %v", res)
	}
	if !strings.Contains(res.Message, gospec.TrueErr) ||
		!strings.Contains(res.Message, gospec.FalseErr) {
		t.Errorf("expected both assertion failures; got: %s", res.Message)
	}
}

func Test_a_body_mutates_its_given_environment(t *testing.T) {
	t.Parallel()
	e := &env{}
	gospec.Evaluate(func(e *env) { e.n = 42 }, e)
	if e.n != 42 {
		t.Errorf("expected body to mutate environment; got: %d", e.n)
	}
}

func Test_a_panicking_body_fails_with_the_panic_s_message(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		value interface{}
		exp   string
	}{
		{"boom", "boom"},
		{errors.New("err boom"), "err boom"},
		{42, "example panicked with a value of type int"},
	} {
		value := tc.value
		res, recovered := gospec.Evaluate(func(*env) { panic(value) }, &env{})
		if !res.IsFailure() || res.Message != tc.exp {
			t.Errorf("expected failure %q; got: %v", tc.exp, res)
		}
		if recovered != value {
			t.Errorf("expected recovered %v; got: %v", value, recovered)
		}
	}
}

func Test_a_runtime_error_fails_its_body(t *testing.T) {
	t.Parallel()
	res, recovered := gospec.Evaluate(func(*env) {
		var m map[string]int
		m["x"] = 1
	}, &env{})
	if !res.IsFailure() || recovered == nil {
		t.Fatalf("expected failure by runtime error; got: %v", res)
	}
	if !strings.Contains(res.Message, "nil map") {
		t.Errorf("expected runtime error message; got: %s", res.Message)
	}
}

func Test_a_body_exiting_its_goroutine_fails(t *testing.T) {
	t.Parallel()
	res, recovered := gospec.Evaluate(func(*env) { runtime.Goexit() }, &env{})
	if !res.IsFailure() || recovered != gospec.ErrGoexit {
		t.Errorf("expected goexit failure; got: %v, %v", res, recovered)
	}
	if res.Message != gospec.ErrGoexit.Error() {
		t.Errorf("expected message %q; got: %q",
			gospec.ErrGoexit.Error(), res.Message)
	}
}

func Test_unsupported_or_nil_bodies_panic_at_registration(t *testing.T) {
	t.Parallel()
	for name, body := range map[string]interface{}{
		"nil":               nil,
		"typed nil":         (func(*env))(nil),
		"wrong environment": func(*struct{}) {},
		"wrong return type": func(*env) int { return 0 },
		"no function":       42,
	} {
		body := body
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			gospec.Normalize[env](body)
		}()
	}
}

func Test_a_result_s_string_shows_outcome_and_message(t *testing.T) {
	t.Parallel()
	for exp, res := range map[string]gospec.Result{
		"success":      gospec.Succeeded(),
		"ignored":      gospec.IgnoredResult(),
		"failure":      gospec.Failed(""),
		"failure: msg": gospec.Failed("msg"),
	} {
		if res.String() != exp {
			t.Errorf("expected %q; got: %q", exp, res.String())
		}
	}
}

func Test_from_bool_and_from_error_map_to_success_and_failure(t *testing.T) {
	t.Parallel()
	if !gospec.FromBool(true).IsSuccess() || !gospec.FromBool(false).IsFailure() {
		t.Error("expected FromBool to map true/false to success/failure")
	}
	if !gospec.FromError(nil).IsSuccess() {
		t.Error("expected FromError(nil) to succeed")
	}
	if res := gospec.FromError(errors.New("x")); !res.IsFailure() || res.Message != "x" {
		t.Errorf("expected failure with message x; got: %v", res)
	}
}
