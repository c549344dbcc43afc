package venv

import (
	"context"
	"encoding/json"

	"github.com/theblitlabs/venvctl/internal/shell"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

// Package is one installed package as reported by the package manager.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Install runs the package manager's install command once per package, in
// input order, inside the activated environment. An empty list is valid and
// runs nothing.
//
// Exit status is deliberately not checked: a failing package does not abort
// the loop and is not surfaced as an error, only recorded on its Result and
// visible on the routed output streams. Packages installed before a failure
// stay installed.
func (e *Environment) Install(ctx context.Context, packages []string, opts ...shell.Option) ([]shell.Result, error) {
	if !e.valid() {
		return nil, ErrInvalidHandle
	}
	log := logger.WithComponent("venv")
	runner := e.runner()

	results := make([]shell.Result, 0, len(packages))
	for _, pkg := range packages {
		result, err := runner.Run(ctx, e.packageManager, []string{"install", pkg}, opts...)
		if err != nil {
			// The shell itself could not be spawned; nothing package-specific
			// to tolerate here.
			return results, err
		}
		if result.ExitCode != 0 {
			log.Warn().Str("package", pkg).Int("exit_code", result.ExitCode).Msg("Package install reported failure")
		}
		results = append(results, *result)
	}

	return results, nil
}

// List queries the package manager for installed packages and returns them
// in the order reported. The package manager must support `list --format
// json` emitting an array of objects with string name and version fields;
// anything else is a *MalformedOutputError.
func (e *Environment) List(ctx context.Context) ([]Package, error) {
	if !e.valid() {
		return nil, ErrInvalidHandle
	}

	out, err := e.runner().Output(ctx, e.packageManager, "list", "--format", "json")
	if err != nil {
		return nil, err
	}

	var packages []Package
	if err := json.Unmarshal([]byte(out), &packages); err != nil {
		return nil, &MalformedOutputError{Output: out, Err: err}
	}
	if packages == nil {
		packages = []Package{}
	}

	return packages, nil
}
