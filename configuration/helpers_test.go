package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ARTM2000/acorn"
	"github.com/stretchr/testify/require"
)

type testLog interface{ Write(msg string) }

type testConsoleLog struct{ lines []string }

func (l *testConsoleLog) Write(msg string) { l.lines = append(l.lines, msg) }

type testEmailLog struct{ sent int }

func (l *testEmailLog) Write(string) { l.sent++ }

type testEngine struct{ Log testLog }

type testCar struct {
	Engine *testEngine
	Log    testLog
}

func newTestConsoleLog() *testConsoleLog                  { return &testConsoleLog{} }
func newTestEmailLog() *testEmailLog                      { return &testEmailLog{} }
func newTestEngine(l testLog) *testEngine                 { return &testEngine{Log: l} }
func newTestCar(e *testEngine) *testCar                   { return &testCar{Engine: e, Log: &testEmailLog{}} }
func newTestCarWithLog(e *testEngine, l testLog) *testCar { return &testCar{Engine: e, Log: l} }

func newTestCatalog() *Catalog {
	return NewCatalog().
		AddType("consoleLog", newTestConsoleLog).
		AddType("emailLog", newTestEmailLog).
		AddType("engine", newTestEngine).
		AddType("car", newTestCar, newTestCarWithLog).
		AddService("log", acorn.Type[testLog]()).
		AddService("engine", acorn.Type[*testEngine]()).
		AddService("car", acorn.Type[*testCar]())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func buildFrom(t *testing.T, f *File, cat *Catalog) (acorn.Container, error) {
	t.Helper()
	b := acorn.NewBuilder()
	b.RegisterModule(f.Module(cat))
	return b.Build()
}
