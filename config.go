// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gospec

import (
	"os"
	"runtime"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ExitStatus is the status a process exits with if a Runner's run
// failed and its configuration demands to exit on failure.  It matches
// the status of a failing go-test or cargo-test binary.
const ExitStatus = 101

// Configuration controls how a Runner evaluates a suite.
type Configuration struct {

	// Parallel evaluates the blocks of a context concurrently.
	Parallel bool `yaml:"parallel"`

	// ExitOnFailure makes RunOrExit terminate the process with
	// ExitStatus if a run failed.
	ExitOnFailure bool `yaml:"exit_on_failure"`

	// Workers bounds the number of hooks and example bodies which are
	// executed at the same time.  A value smaller than one defaults to
	// runtime.GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultConfiguration runs in parallel and exits on failure.
func DefaultConfiguration() Configuration {
	return Configuration{
		Parallel:      true,
		ExitOnFailure: true,
		Workers:       runtime.GOMAXPROCS(0),
	}
}

// WithParallel returns a copy of c with given parallel setting.
func (c Configuration) WithParallel(parallel bool) Configuration {
	c.Parallel = parallel
	return c
}

// WithExitOnFailure returns a copy of c with given exit-on-failure
// setting.
func (c Configuration) WithExitOnFailure(exit bool) Configuration {
	c.ExitOnFailure = exit
	return c
}

// WithWorkers returns a copy of c with given number of workers.
func (c Configuration) WithWorkers(n int) Configuration {
	c.Workers = n
	return c
}

// workers returns the effective number of workers.
func (c Configuration) workers() int {
	if !c.Parallel {
		return 1
	}
	if c.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// ParseConfiguration reads a yaml document like
//
//	parallel: false
//	exit_on_failure: true
//	workers: 4
//
// whereas keys which are not given keep their default value.
func ParseConfiguration(data []byte) (Configuration, error) {
	cfg := DefaultConfiguration()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, errors.Wrap(err, "gospec: parse configuration")
	}
	if cfg.Workers < 0 {
		return Configuration{}, errors.Errorf(
			"gospec: parse configuration: negative workers: %d", cfg.Workers)
	}
	return cfg, nil
}

// LoadConfiguration parses the yaml configuration file at given path
// (see ParseConfiguration).
func LoadConfiguration(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, errors.Wrap(err, "gospec: load configuration")
	}
	return ParseConfiguration(data)
}

// Environment variables evaluated by ConfigurationFromEnv.
const (
	EnvParallel      = "GOSPEC_PARALLEL"
	EnvExitOnFailure = "GOSPEC_EXIT_ON_FAILURE"
	EnvWorkers       = "GOSPEC_WORKERS"
)

// ConfigurationFromEnv overwrites the settings of given configuration
// by the environment variables EnvParallel, EnvExitOnFailure and
// EnvWorkers if they are set.
func ConfigurationFromEnv(base Configuration) (Configuration, error) {
	cfg := base
	if v, ok := os.LookupEnv(EnvParallel); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return base, errors.Wrapf(err, "gospec: %s", EnvParallel)
		}
		cfg.Parallel = b
	}
	if v, ok := os.LookupEnv(EnvExitOnFailure); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return base, errors.Wrapf(err, "gospec: %s", EnvExitOnFailure)
		}
		cfg.ExitOnFailure = b
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return base, errors.Wrapf(err, "gospec: %s", EnvWorkers)
		}
		if n < 0 {
			return base, errors.Errorf("gospec: %s: negative workers: %d",
				EnvWorkers, n)
		}
		cfg.Workers = n
	}
	return cfg, nil
}
