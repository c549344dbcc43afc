package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theblitlabs/venvctl/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithMode(logger.LogModeTest)
	os.Exit(m.Run())
}

// writeActivate drops an activation script into a temp dir so the shell
// wrapper has something real to source.
func writeActivate(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "activate")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCommandLine(t *testing.T) {
	r := NewRunner("/bin/bash", "/envs/demo/bin/activate")

	line := r.CommandLine("pip", "install", "requests")
	assert.Equal(t, "source /envs/demo/bin/activate && pip install requests", line)

	line = r.CommandLine("python")
	assert.Equal(t, "source /envs/demo/bin/activate && python", line)
}

func TestNewRunnerDefaultShell(t *testing.T) {
	r := NewRunner("", "/envs/demo/bin/activate")
	assert.Equal(t, DefaultShell, r.Shell)
}

func TestRun(t *testing.T) {
	activate := writeActivate(t, "export GREETING=hello\n")
	r := NewRunner("/bin/bash", activate)

	t.Run("captures output and sources activation", func(t *testing.T) {
		var out bytes.Buffer
		result, err := r.Run(context.Background(), "echo", []string{"$GREETING"},
			WithStdout(&out), WithCapture())
		require.NoError(t, err)

		assert.Equal(t, 0, result.ExitCode)
		assert.Equal(t, "hello\n", out.String())
		assert.Equal(t, "hello\n", result.Stdout)
	})

	t.Run("lenient exit reporting", func(t *testing.T) {
		var out bytes.Buffer
		result, err := r.Run(context.Background(), "exit", []string{"2"},
			WithStdout(&out), WithStderr(&out))
		require.NoError(t, err)
		assert.Equal(t, 2, result.ExitCode)
	})

	t.Run("strict exit checking", func(t *testing.T) {
		var errOut bytes.Buffer
		result, err := r.Run(context.Background(), "exit", []string{"3"},
			WithStdout(&errOut), WithStderr(&errOut), WithCapture(), WithExitCheck())
		require.Error(t, err)

		var procErr *ProcessError
		require.True(t, errors.As(err, &procErr))
		assert.Equal(t, 3, procErr.ExitCode)
		assert.Equal(t, 3, result.ExitCode)
	})

	t.Run("missing activation script fails the wrapper", func(t *testing.T) {
		broken := NewRunner("/bin/bash", filepath.Join(t.TempDir(), "missing", "activate"))
		var sink bytes.Buffer
		result, err := broken.Run(context.Background(), "echo", []string{"hi"},
			WithStdout(&sink), WithStderr(&sink))
		require.NoError(t, err)
		assert.NotEqual(t, 0, result.ExitCode)
	})
}

func TestOutput(t *testing.T) {
	activate := writeActivate(t, "")
	r := NewRunner("/bin/bash", activate)

	t.Run("returns captured stdout", func(t *testing.T) {
		out, err := r.Output(context.Background(), "echo", "one", "two")
		require.NoError(t, err)
		assert.Equal(t, "one two\n", out)
	})

	t.Run("non-zero exit is always an error", func(t *testing.T) {
		_, err := r.Output(context.Background(), "exit", "4")

		var procErr *ProcessError
		require.True(t, errors.As(err, &procErr))
		assert.Equal(t, 4, procErr.ExitCode)
	})
}

func TestExecCommand(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		out, err := ExecCommand(context.Background(), "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("failure includes output", func(t *testing.T) {
		_, err := ExecCommand(context.Background(), "/bin/sh", "-c", "echo boom >&2; exit 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestProcessErrorMessage(t *testing.T) {
	err := &ProcessError{Command: "pip install x", ExitCode: 1, Stderr: "no such package\n"}
	assert.Contains(t, err.Error(), "exit code 1")
	assert.Contains(t, err.Error(), "no such package")

	bare := &ProcessError{Command: "python x.py", ExitCode: 2}
	assert.Contains(t, bare.Error(), "exit code 2")
}
