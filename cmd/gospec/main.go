/*
Gospec runs a sample suite specifying the behavior of a set and renders
its run to the standard output.  It shows how a suite is built, run and
reported and fails on purpose with one panicking example.

Usage:

	gospec

Gospec takes no arguments.  It is configured by a yaml file whose path
is given by the GOSPEC_CONFIG environment variable, e.g.

	parallel: false
	exit_on_failure: true
	workers: 4

and by the variables GOSPEC_PARALLEL, GOSPEC_EXIT_ON_FAILURE and
GOSPEC_WORKERS which take precedence over the file.  GOSPEC_DEBUG=true
switches on the runner's diagnostics.  Sample output of a serial run:

	tests:

	Given "a set"
	  When "not having added any items"
	    Then "it is empty" ... ok
	  When "adding an new item"
	    Then "it is not empty any more" ... ok
	    Then "its len increases by 1" ... ok
	    When "adding it again"
	      Then "its len remains the same" ... ok
	  When "returning to outer context"
	    Then "it is still empty" ... ok
	  Then "a panic fails" ... FAILED

	failures:

	Given "a set"
	  Then "a panic fails"
	    some reason for failure

	duration: 0.001s.

	test result: FAILED. 5 passed; 1 failed; 0 ignored

	error: test failed

followed by a summary table.
*/
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/slukits/gospec"
	"github.com/slukits/gospec/pkg/logger"
)

const (
	envConfig = "GOSPEC_CONFIG"
	envDebug  = "GOSPEC_DEBUG"
)

func main() {
	cfg, err := configuration()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := diagnostics()
	defer func() { _ = log.Sync() }()

	gospec.NewRunner(cfg,
		logger.New(os.Stdout, cfg.Parallel,
			logger.WithColors(true), logger.WithDiagnostics(log)),
		logger.NewSummarizer(os.Stdout),
	).SetLogger(log).RunOrExit(setSuite())
}

// configuration loads the file at GOSPEC_CONFIG if set and overwrites
// it with the environment's settings.
func configuration() (gospec.Configuration, error) {
	cfg := gospec.DefaultConfiguration()
	if path := os.Getenv(envConfig); path != "" {
		var err error
		if cfg, err = gospec.LoadConfiguration(path); err != nil {
			return cfg, err
		}
	}
	return gospec.ConfigurationFromEnv(cfg)
}

func diagnostics() *zap.Logger {
	if debug, _ := strconv.ParseBool(os.Getenv(envDebug)); !debug {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
