package acorn

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Constructor selection
// ---------------------------------------------------------------------------

func TestConstructorSelection(t *testing.T) {
	t.Run("most satisfiable parameters wins", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterType(newTestConsoleLog).As(logType)
		b.RegisterType(newTestEngine)
		b.RegisterType(newTestCar, newTestCarWithLog)
		c := mustBuild(t, b)

		car, err := Resolve[*testCar](c)
		require.NoError(t, err)
		assert.IsType(t, &testConsoleLog{}, car.Log, "NewCarWithLog should be chosen")
	})

	t.Run("declaration order does not affect the greedy choice", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterType(newTestConsoleLog).As(logType)
		b.RegisterType(newTestEngine)
		b.RegisterType(newTestCarWithLog, newTestCar)
		c := mustBuild(t, b)

		car, err := Resolve[*testCar](c)
		require.NoError(t, err)
		assert.IsType(t, &testConsoleLog{}, car.Log)
	})

	t.Run("falls back when a parameter has no registration", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterInstance(&testEngine{})
		b.RegisterType(newTestCar, newTestCarWithLog)
		c := mustBuild(t, b)

		car, err := Resolve[*testCar](c)
		require.NoError(t, err)
		assert.IsType(t, &testEmailLog{}, car.Log, "NewCar should be chosen")
	})

	t.Run("first declared wins on equal counts", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterType(newTestConsoleLog).As(logType)
		b.RegisterInstance(&testEngine{})
		b.RegisterType(
			func(l testLog) *testCar { return &testCar{Log: l} },
			func(e *testEngine) *testCar { return &testCar{Engine: e} },
		)
		c := mustBuild(t, b)

		car, err := Resolve[*testCar](c)
		require.NoError(t, err)
		assert.NotNil(t, car.Log)
		assert.Nil(t, car.Engine)
	})

	t.Run("same parameter set is ambiguous", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterType(newTestConsoleLog).As(logType)
		b.RegisterInstance(&testEngine{})
		b.RegisterType(
			func(e *testEngine, l testLog) *testCar { return &testCar{Engine: e, Log: l} },
			func(l testLog, e *testEngine) *testCar { return &testCar{Engine: e, Log: l} },
		)
		c := mustBuild(t, b)

		_, err := Resolve[*testCar](c)
		assert.ErrorIs(t, err, ErrAmbiguousConstructor)
	})

	t.Run("ambiguity among losing constructors is ignored", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterType(newTestConsoleLog).As(logType)
		b.RegisterInstance(&testEngine{})
		b.RegisterType(
			func(l testLog) *testCar { return &testCar{Log: l} },
			func(l testLog) *testCar { return &testCar{Log: l} },
			newTestCarWithLog,
		)
		c := mustBuild(t, b)

		car, err := Resolve[*testCar](c)
		require.NoError(t, err)
		assert.NotNil(t, car.Engine)
	})

	t.Run("no satisfiable constructor lists what is missing", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterType(newTestCar, newTestCarWithLog)
		c := mustBuild(t, b)

		_, err := Resolve[*testCar](c)
		require.ErrorIs(t, err, ErrUnresolvedDependency)
		assert.Contains(t, err.Error(), "no constructor of *acorn.testCar can be satisfied")
		assert.Contains(t, err.Error(), "*acorn.testEngine")
	})

	t.Run("selection is shallow", func(t *testing.T) {
		// testEngine is registered but its own testLog dependency is not
		b := NewBuilder()
		b.RegisterType(newTestEngine)
		b.RegisterType(newTestCar, func() *testCar { return &testCar{} })
		c := mustBuild(t, b)

		_, err := Resolve[*testCar](c)
		assert.ErrorIs(t, err, ErrUnresolvedDependency)
	})
}

// ---------------------------------------------------------------------------
// UsingConstructor
// ---------------------------------------------------------------------------

func TestUsingConstructor_Resolve(t *testing.T) {
	t.Run("pinned constructor overrides the greedy choice", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterType(newTestConsoleLog).As(logType)
		b.RegisterType(newTestEngine)
		b.RegisterType(newTestCar, newTestCarWithLog).UsingConstructor(engineType)
		c := mustBuild(t, b)

		car, err := Resolve[*testCar](c)
		require.NoError(t, err)
		assert.IsType(t, &testEmailLog{}, car.Log)
		assert.IsType(t, &testConsoleLog{}, car.Engine.Log)
	})

	t.Run("pinned constructor with unsatisfiable parameter", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterInstance(&testEngine{})
		b.RegisterType(newTestCar, newTestCarWithLog).UsingConstructor(engineType, logType)
		c := mustBuild(t, b)

		_, err := Resolve[*testCar](c)
		assert.ErrorIs(t, err, ErrConstructorMismatch)
		assert.ErrorIs(t, err, ErrUnresolvedDependency)
	})

	t.Run("zero-parameter pin", func(t *testing.T) {
		b := NewBuilder()
		b.RegisterType(newTestConsoleLog).As(logType)
		b.RegisterType(newTestEngine, func() *testEngine { return &testEngine{} }).UsingConstructor()
		c := mustBuild(t, b)

		engine, err := Resolve[*testEngine](c)
		require.NoError(t, err)
		assert.Nil(t, engine.Log)
	})
}

// ---------------------------------------------------------------------------
// constructor helpers
// ---------------------------------------------------------------------------

func TestConstructor_SameSignature(t *testing.T) {
	a, err := newConstructor(newTestCarWithLog)
	require.NoError(t, err)
	b, err := newConstructor(func(l testLog, e *testEngine) *testCar { return nil })
	require.NoError(t, err)
	c, err := newConstructor(newTestCar)
	require.NoError(t, err)

	assert.True(t, a.sameSignature(b))
	assert.False(t, a.sameSignature(c))
	assert.True(t, a.matches([]reflect.Type{engineType, logType}))
	assert.False(t, b.matches([]reflect.Type{engineType, logType}))
}
