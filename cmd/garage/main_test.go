package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestScenariosCmd(t *testing.T) {
	out, _, err := execute(t, "scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "single-type")
	assert.Contains(t, out, "instance")
}

func TestRunCmd(t *testing.T) {
	t.Run("named scenarios", func(t *testing.T) {
		out, _, err := execute(t, "run", "multi-interface", "same-type")
		require.NoError(t, err)
		assert.Contains(t, out, "== multi-interface\n")
		assert.Contains(t, out, "== same-type\n")
		assert.Contains(t, out, "Trip finished with engine")
	})

	t.Run("every scenario validated", func(t *testing.T) {
		out, _, err := execute(t, "run", "--all", "--validate")
		require.NoError(t, err)
		assert.Contains(t, out, "== instance\n")
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, _, err := execute(t, "run", "bicycle")
		assert.Error(t, err)
	})

	t.Run("no scenario", func(t *testing.T) {
		_, _, err := execute(t, "run")
		assert.Error(t, err)
	})

	t.Run("debug logging shows the wiring", func(t *testing.T) {
		_, logs, err := execute(t, "--log-level", "debug", "run", "single-type")
		require.NoError(t, err)
		assert.Contains(t, logs, "registered default")
		assert.Contains(t, logs, "running scenario")
	})

	t.Run("log level from the environment", func(t *testing.T) {
		t.Setenv(logLevelEnv, "info")
		_, logs, err := execute(t, "run", "single-type")
		require.NoError(t, err)
		assert.Contains(t, logs, "running scenario")
		assert.NotContains(t, logs, "registered default")
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := execute(t, "--log-level", "loud", "scenarios")
		assert.Error(t, err)
	})
}

func TestMusicCmd(t *testing.T) {
	t.Run("default playlist", func(t *testing.T) {
		out, _, err := execute(t, "music")
		require.NoError(t, err)
		assert.Equal(t, "Listing Songs...\nPlaying : \"En Yesu Unnai Thedugiraar.mp3\" song...\nClosing library\n", out)
	})

	t.Run("songs from flags", func(t *testing.T) {
		out, _, err := execute(t, "music", "--song", "one.mp3", "--song", "two.mp3")
		require.NoError(t, err)
		assert.Contains(t, out, `"one.mp3"`)
		assert.Contains(t, out, `"two.mp3"`)
	})
}

func TestComposeCmd(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "components.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("car and library", func(t *testing.T) {
		path := write(t, `
components:
  - type: consoleLog
    services: [log, report]
    lifetime: single-instance
  - type: engine
  - type: car
  - type: audioPlayer
    services: [player]
  - type: musicLibrary
    services: [library]
    lifetime: single-instance
`)
		out, _, err := execute(t, "compose", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Listing Songs...")
		assert.Contains(t, out, "Car going forward...")
		assert.Contains(t, out, "Trip finished with engine")
		assert.Contains(t, out, "Closing library")
	})

	t.Run("nothing to use", func(t *testing.T) {
		path := write(t, "components:\n  - type: consoleLog\n    services: [log]\n")
		_, _, err := execute(t, "compose", "-f", path)
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		path := write(t, "components:\n  - type: bicycle\n")
		_, _, err := execute(t, "compose", "-f", path)
		assert.ErrorContains(t, err, "bicycle")
	})

	t.Run("file is required", func(t *testing.T) {
		_, _, err := execute(t, "compose")
		assert.Error(t, err)
	})
}
