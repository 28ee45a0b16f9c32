// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// thunk is a loaded script, ready to be invoked inside the caller's control
// flow. It reads stdio, os.Args, environment, and working directory from the
// ambient process state at invocation time, which is how the sandbox's
// overrides reach it. A non-nil error is an execution fault, not a
// non-zero exit.
type thunk func() (ExitCode, error)

// loadScript resolves command and returns an invocable for it.
//
// A plain command name (no path separator) is first looked up in the entry
// point registry via lookup; a hit yields a thunk calling the registered
// function directly. Otherwise the command is located on the filesystem and
// the returned thunk executes the file's source as its own top-level shell
// program.
func loadScript(command, cwd string, env map[string]string, lookup LookupFunc) (thunk, error) {
	if lookup != nil && !strings.ContainsRune(command, '/') && !strings.ContainsRune(command, os.PathSeparator) {
		if main, ok := lookup(command); ok {
			return func() (ExitCode, error) {
				return ExitCode(main()), nil
			}, nil
		}
	}

	path, err := locateScript(command, cwd, env)
	if err != nil {
		return nil, err
	}
	return execScriptThunk(path), nil
}

// execScriptThunk returns a thunk that reads the script file and runs its
// top-level code with the embedded shell interpreter. Normal completion of
// the top level yields 0 regardless of the last statement's value; an
// explicit exit inside the script yields that status.
func execScriptThunk(path string) thunk {
	return func() (ExitCode, error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return 1, fmt.Errorf("failed to read script %s: %w", path, err)
		}

		prog, err := syntax.NewParser().Parse(bytes.NewReader(src), path)
		if err != nil {
			return 1, fmt.Errorf("failed to parse script %s: %w", path, err)
		}

		// Bind stdio and positional parameters at invocation time so the
		// sandbox's swapped state is what the script observes. Working
		// directory and environment are intentionally left to their
		// interpreter defaults, which read the ambient process state the
		// sandbox already adjusted.
		opts := []interp.RunnerOption{
			interp.StdIO(os.Stdin, os.Stdout, os.Stderr),
		}
		if args := os.Args; len(args) > 1 {
			params := append([]string{"--"}, args[1:]...)
			opts = append(opts, interp.Params(params...))
		}

		runner, err := interp.New(opts...)
		if err != nil {
			return 1, fmt.Errorf("failed to create interpreter: %w", err)
		}

		if err := runner.Run(context.Background(), prog); err != nil {
			var status interp.ExitStatus
			if errors.As(err, &status) {
				return ExitCode(status), nil
			}
			return 1, fmt.Errorf("script execution failed: %w", err)
		}
		return 0, nil
	}
}
