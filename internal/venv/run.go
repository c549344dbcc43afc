package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/theblitlabs/venvctl/internal/shell"
)

// Run executes the script at scriptPath with the environment's interpreter,
// forwarding args as given. By default a non-zero exit is reported on the
// Result and not as an error; pass shell.WithExitCheck to get a
// *shell.ProcessError instead.
//
// Args are space-joined into the shell command line without escaping;
// callers must supply shell-safe values.
func (e *Environment) Run(ctx context.Context, scriptPath string, args []string, opts ...shell.Option) (*shell.Result, error) {
	if !e.valid() {
		return nil, ErrInvalidHandle
	}

	interpreterArgs := append([]string{scriptPath}, args...)
	return e.runner().Run(ctx, e.interpreter, interpreterArgs, opts...)
}

// RunSource writes source to a fresh temporary file and executes it exactly
// as Run would execute a script path. The temporary file is removed when the
// call returns, on success and failure alike; the subprocess reads it by
// path, so it is fully written and closed before the interpreter starts.
func (e *Environment) RunSource(ctx context.Context, source string, args []string, opts ...shell.Option) (*shell.Result, error) {
	if !e.valid() {
		return nil, ErrInvalidHandle
	}

	scriptPath := filepath.Join(os.TempDir(), fmt.Sprintf("venvctl-%s.py", uuid.New().String()))
	if err := os.WriteFile(scriptPath, []byte(source), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temporary script: %w", err)
	}
	defer os.Remove(scriptPath)

	return e.Run(ctx, scriptPath, args, opts...)
}
