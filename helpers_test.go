package acorn

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Shared test types and constructors used across test files.

// mustBuild calls t.Fatal if build fails.
func mustBuild(t *testing.T, b *Builder) Container {
	t.Helper()
	c, err := b.Build()
	require.NoError(t, err, "Build")
	return c
}

// within runs fn and fails the test if it has not returned after d.
func within(t *testing.T, d time.Duration, fn func() error) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-time.After(d):
		t.Fatalf("still blocked after %s", d)
		return nil
	}
}

type testLog interface {
	Write(msg string)
}

type testReport interface {
	Report(msg string)
}

type testConsoleLog struct{ Lines []string }

func (l *testConsoleLog) Write(msg string)  { l.Lines = append(l.Lines, msg) }
func (l *testConsoleLog) Report(msg string) { l.Lines = append(l.Lines, "report: "+msg) }

type testEmailLog struct{ Sent []string }

func (l *testEmailLog) Write(msg string) { l.Sent = append(l.Sent, msg) }

type testEngine struct{ Log testLog }

type testCar struct {
	Engine *testEngine
	Log    testLog
}

type testCircA struct{ B *testCircB }
type testCircB struct{ C *testCircC }
type testCircC struct{ A *testCircA }

func newTestConsoleLog() *testConsoleLog    { return &testConsoleLog{} }
func newTestEmailLog() *testEmailLog        { return &testEmailLog{} }
func newTestEngine(log testLog) *testEngine { return &testEngine{Log: log} }
func newTestCircA(b *testCircB) *testCircA  { return &testCircA{B: b} }
func newTestCircB(c *testCircC) *testCircB  { return &testCircB{C: c} }
func newTestCircC(a *testCircA) *testCircC  { return &testCircC{A: a} }
func newTestCar(e *testEngine) *testCar     { return &testCar{Engine: e, Log: &testEmailLog{}} }
func newTestCarWithLog(e *testEngine, l testLog) *testCar {
	return &testCar{Engine: e, Log: l}
}

var (
	logType    = Type[testLog]()
	reportType = Type[testReport]()
	engineType = Type[*testEngine]()
)

// testClosable is a single instance that implements io.Closer for shutdown
// tests.
type testClosable struct {
	Name   string
	Closed bool
	Order  *[]string // shared slice to record close order
}

func (c *testClosable) Close() error {
	c.Closed = true
	if c.Order != nil {
		*c.Order = append(*c.Order, c.Name)
	}
	return nil
}

// testFailCloser implements io.Closer but returns an error.
type testFailCloser struct{}

func (f *testFailCloser) Close() error {
	return errors.New("close failed")
}
