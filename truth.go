// Package truth provides fluent propositions for Go tests.
//
// Instead of writing
//
//	if !reflect.DeepEqual(got, want) { t.Fatalf(...) }
//	if !slices.Contains(got, x) { t.Fatalf(...) }
//
// one writes
//
//	truth.Assert(got).IsEqualTo(want)
//	truth.Assert(got).Contains(x)
//
// Assert picks a subject for the value under test according to what the
// value can do: strings, numbers, maps, errors, reflect.Type values, call
// doubles and iterables each unlock their own propositions. Calling a
// proposition the value does not support is a UsageError.
//
// A subject that is never evaluated is almost certainly a mistake, such as
// Assert(x.IsEmpty()) instead of Assert(x).IsEmpty(). Every subject is
// tracked until its first proposition runs; call VerifyTestMain from
// TestMain, or VerifyNone from a test, to report the ones left dangling.
//
// The package level Assert panics on failure. Use New to fail a test with
// t.Fatal, or NewExpect to record the failure with t.Error and keep going.
package truth

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnoswap-labs/truth/internal/config"
)

// TestingT is the subset of testing.TB used to report failures.
type TestingT interface {
	Helper()
	Error(args ...any)
	Fatal(args ...any)
}

// Truth creates subjects whose failures are reported to a TestingT.
type Truth struct {
	t      TestingT
	expect bool
}

// New returns a Truth that stops the test with t.Fatal on the first failure.
func New(t TestingT) *Truth {
	return &Truth{t: t}
}

// NewExpect returns a Truth that records failures with t.Error and lets the
// test continue. Usage errors still stop the test.
func NewExpect(t TestingT) *Truth {
	return &Truth{t: t, expect: true}
}

var std = &Truth{t: panicking{}}

// Assert returns a subject for value. Failures panic with an
// *AssertionFailure or *UsageError.
func Assert(value any) *Subject {
	return dispatch(std, value)
}

// Assert returns a subject for value whose failures are reported to tr's
// TestingT.
func (tr *Truth) Assert(value any) *Subject {
	tr.t.Helper()
	return dispatch(tr, value)
}

// fail reports an assertion failure. It returns only in expect mode.
func (tr *Truth) fail(msg string) {
	tr.t.Helper()
	log().Debug("assertion failed", zap.String("message", msg))

	err := withStack(&AssertionFailure{Message: msg})
	if tr.expect {
		tr.t.Error(err)
		return
	}
	tr.t.Fatal(err)
}

// misuse reports a UsageError. It returns only if the TestingT's Fatal does.
func (tr *Truth) misuse(msg string) {
	tr.t.Helper()
	log().Debug("invalid use", zap.String("message", msg))
	tr.t.Fatal(withStack(&UsageError{Message: msg}))
}

// panicking is the TestingT behind the package level Assert.
type panicking struct{}

func (panicking) Helper() {}

func (p panicking) Error(args ...any) { p.Fatal(args...) }

func (panicking) Fatal(args ...any) {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			panic(err)
		}
	}
	panic(fmt.Sprint(args...))
}

var (
	loggerMu sync.RWMutex
	logger   *zap.Logger
)

// SetLogger replaces the package logger. By default nothing is logged unless
// a .truth.yaml file sets log_level.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func log() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = newLogger(settings())
	}
	return logger
}

func newLogger(s loadedConfig) *zap.Logger {
	if !s.found {
		return zap.NewNop()
	}
	level, err := zapcore.ParseLevel(s.LogLevel)
	if err != nil {
		level = zapcore.WarnLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

type loadedConfig struct {
	config.Config
	found bool
}

// settings loads .truth.yaml once per process.
var settings = sync.OnceValue(func() loadedConfig {
	c, found, err := config.Discover(".")
	if err != nil {
		// The logger is not available yet.
		fmt.Fprintf(os.Stderr, "truth: ignoring configuration: %v\n", err)
		return loadedConfig{Config: config.Default()}
	}
	return loadedConfig{Config: c, found: found}
})
