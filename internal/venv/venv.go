// Package venv manages isolated Python interpreter environments: creating
// them with an external tool, installing packages into them, querying what
// is installed and running scripts inside them. It orchestrates subprocesses
// and keeps filesystem bookkeeping; the environment tool, package manager
// and interpreter themselves are external collaborators.
package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theblitlabs/venvctl/internal/shell"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

const (
	// MarkerFile is the sentinel written into a directory after successful
	// creation. Its presence is the sole source of truth for "this directory
	// is a managed environment"; its content is written but never parsed.
	MarkerFile = ".ENV-MARKER"

	// activateRelPath is where the creation tool places the activation
	// script. Fixed by the external tool's layout.
	activateRelPath = "bin/activate"

	DefaultTool           = "virtualenv"
	DefaultInterpreter    = "python"
	DefaultPackageManager = "pip"
)

// Environment identifies one managed environment: its directory and the
// program names used inside it. It is an immutable value; no operation
// mutates its fields, and it owns no process state.
type Environment struct {
	dir            string
	tool           string
	interpreter    string
	packageManager string
	shell          string
}

// Option configures an Environment at construction time.
type Option func(*Environment)

// WithTool sets the environment-creation program Create invokes.
func WithTool(tool string) Option {
	return func(e *Environment) { e.tool = tool }
}

// WithInterpreter sets the program name used to run scripts.
func WithInterpreter(interpreter string) Option {
	return func(e *Environment) { e.interpreter = interpreter }
}

// WithPackageManager sets the program name used to manage packages.
func WithPackageManager(pm string) Option {
	return func(e *Environment) { e.packageManager = pm }
}

// WithShell sets the shell used to source the activation script.
func WithShell(sh string) Option {
	return func(e *Environment) { e.shell = sh }
}

// New returns a handle referencing an existing environment at dir. It does
// not touch the filesystem; operations fail later if dir is not managed.
func New(dir string, opts ...Option) *Environment {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	e := &Environment{
		dir:            abs,
		tool:           DefaultTool,
		interpreter:    DefaultInterpreter,
		packageManager: DefaultPackageManager,
		shell:          shell.DefaultShell,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the environment's directory.
func (e *Environment) Dir() string { return e.dir }

// Interpreter returns the script interpreter's program name.
func (e *Environment) Interpreter() string { return e.interpreter }

// PackageManager returns the package manager's program name.
func (e *Environment) PackageManager() string { return e.packageManager }

// MarkerPath returns the location of the environment's marker file.
func (e *Environment) MarkerPath() string {
	return filepath.Join(e.dir, MarkerFile)
}

// ActivatePath returns the location of the environment's activation script.
func (e *Environment) ActivatePath() string {
	return filepath.Join(e.dir, activateRelPath)
}

func (e *Environment) valid() bool {
	return e != nil && e.dir != ""
}

func (e *Environment) runner() *shell.Runner {
	return shell.NewRunner(e.shell, e.ActivatePath())
}

// Create ensures a managed environment exists at dir and returns a handle
// to it. If the marker file is already present the creation tool is not
// invoked at all, so a second Create on the same directory is cheap.
//
// The marker check and the tool invocation are not atomic: two concurrent
// Creates on one directory can both run the tool. Callers that need
// stronger guarantees must serialize externally.
func Create(ctx context.Context, dir string, opts ...Option) (*Environment, error) {
	e := New(dir, opts...)
	log := logger.WithComponent("venv")

	if _, err := os.Stat(e.MarkerPath()); err == nil {
		log.Debug().Str("dir", e.dir).Msg("Environment marker present, skipping creation")
		return e, nil
	}

	log.Info().Str("dir", e.dir).Str("tool", e.tool).Msg("Creating environment")

	output, err := shell.ExecCommand(ctx, e.tool, e.dir)
	if err != nil {
		return nil, &CreationError{
			Tool:   e.tool,
			Dir:    e.dir,
			Output: string(output),
		}
	}

	marker := fmt.Sprintf("created by %s\n", e.tool)
	if err := os.WriteFile(e.MarkerPath(), []byte(marker), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write environment marker: %w", err)
	}

	return e, nil
}

// Destroy removes the environment's directory tree. It refuses with
// ErrNotManaged when the marker file is absent: a directory this package
// did not create must not be blindly deleted. A second Destroy on the same
// handle fails the same way since marker and directory are already gone.
func (e *Environment) Destroy() error {
	if !e.valid() {
		return ErrInvalidHandle
	}
	log := logger.WithComponent("venv")

	if _, err := os.Stat(e.MarkerPath()); err != nil {
		return fmt.Errorf("refusing to remove %s: %w", e.dir, ErrNotManaged)
	}

	if err := removableDir(e.dir); err != nil {
		return err
	}

	if err := os.RemoveAll(e.dir); err != nil {
		return fmt.Errorf("failed to remove environment at %s: %w", e.dir, err)
	}

	log.Info().Str("dir", e.dir).Msg("Environment destroyed")
	return nil
}

// removableDir rejects paths whose recursive deletion could never be the
// removal of a single environment directory.
func removableDir(dir string) error {
	clean := filepath.Clean(dir)
	if clean == "" || clean == "." || clean == string(filepath.Separator) {
		return fmt.Errorf("refusing to remove unsafe path %q", dir)
	}
	if filepath.Dir(clean) == clean {
		return fmt.Errorf("refusing to remove filesystem root %q", dir)
	}
	return nil
}
