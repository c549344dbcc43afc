// Package shell runs programs inside an activated environment by wrapping
// them in a single `<shell> -c "source <activate> && ..."` invocation.
//
// Argument values are space-joined into the -c string without escaping.
// This is a documented trust boundary: callers must supply shell-safe
// values (package names, script paths, arguments).
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/theblitlabs/venvctl/pkg/logger"
)

// DefaultShell is used when a Runner is constructed with an empty shell path.
const DefaultShell = "/bin/bash"

// Result describes one finished subprocess invocation.
type Result struct {
	Command       string        `json:"command"`
	ExitCode      int           `json:"exit_code"`
	Stdout        string        `json:"stdout,omitempty"`
	Stderr        string        `json:"stderr,omitempty"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// ProcessError reports a subprocess that exited non-zero where the caller
// opted into strict exit checking.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command failed with exit code %d: %s\nStderr: %s", e.ExitCode, e.Command, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("command failed with exit code %d: %s", e.ExitCode, e.Command)
}

// Runner executes programs under an environment's activation script. It
// carries no process state and is safe to rebuild per call.
type Runner struct {
	Shell    string
	Activate string
}

func NewRunner(shell, activate string) *Runner {
	if shell == "" {
		shell = DefaultShell
	}
	return &Runner{
		Shell:    shell,
		Activate: activate,
	}
}

// CommandLine builds the string handed to the shell's -c flag.
func (r *Runner) CommandLine(program string, args ...string) string {
	parts := append([]string{program}, args...)
	return fmt.Sprintf("source %s && %s", r.Activate, strings.Join(parts, " "))
}

// Option configures a single Run invocation.
type Option func(*runOptions)

type runOptions struct {
	stdout    io.Writer
	stderr    io.Writer
	capture   bool
	checkExit bool
}

// WithStdout routes the subprocess's standard output to w instead of the
// process-wide os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(o *runOptions) { o.stdout = w }
}

// WithStderr routes the subprocess's standard error to w instead of the
// process-wide os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(o *runOptions) { o.stderr = w }
}

// WithCapture records stdout and stderr on the Result. Captured streams are
// still routed to any writer set with WithStdout/WithStderr.
func WithCapture() Option {
	return func(o *runOptions) { o.capture = true }
}

// WithExitCheck makes Run return a *ProcessError when the subprocess exits
// non-zero. Without it the exit code is only reported on the Result.
func WithExitCheck() Option {
	return func(o *runOptions) { o.checkExit = true }
}

// Run sources the activation script and executes program with args,
// blocking until the subprocess exits. A non-zero exit is not an error
// unless WithExitCheck was given; failures to spawn the shell at all are.
func (r *Runner) Run(ctx context.Context, program string, args []string, opts ...Option) (*Result, error) {
	o := runOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	line := r.CommandLine(program, args...)
	log := logger.WithComponent("shell")
	log.Debug().Str("shell", r.Shell).Str("command", line).Msg("Running command")

	cmd := exec.CommandContext(ctx, r.Shell, "-c", line)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = sink(o.stdout, os.Stdout, o.capture, &outBuf)
	cmd.Stderr = sink(o.stderr, os.Stderr, o.capture, &errBuf)

	startTime := time.Now()
	err := cmd.Run()
	result := &Result{
		Command:       line,
		ExecutionTime: time.Since(startTime),
	}
	if o.capture {
		result.Stdout = outBuf.String()
		result.Stderr = errBuf.String()
	}

	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("failed to run command %q: %w", line, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	if o.checkExit && result.ExitCode != 0 {
		return result, &ProcessError{
			Command:  line,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	return result, nil
}

// Output sources the activation script, executes program with args and
// returns its captured standard output. Non-zero exits are always errors
// here since the caller needs trustworthy output to parse.
func (r *Runner) Output(ctx context.Context, program string, args ...string) (string, error) {
	result, err := r.Run(ctx, program, args,
		WithStdout(io.Discard),
		WithStderr(io.Discard),
		WithCapture(),
		WithExitCheck(),
	)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}

func sink(w io.Writer, fallback io.Writer, capture bool, buf *bytes.Buffer) io.Writer {
	if w == nil {
		w = fallback
	}
	if capture {
		return io.MultiWriter(w, buf)
	}
	return w
}

// ExecCommand runs a program directly, outside any environment activation.
// Used for tools that create environments rather than run inside them.
func ExecCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	// If there's an error, include the command and stderr for better debugging
	if err != nil {
		cmdStr := fmt.Sprintf("%s %s", name, strings.Join(args, " "))
		return output, fmt.Errorf("command failed: %s\nOutput: %s\nError: %w", cmdStr, string(output), err)
	}

	return output, nil
}
