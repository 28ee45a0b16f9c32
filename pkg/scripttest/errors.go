// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"errors"
	"fmt"
	"strings"

	"conscript/internal/sandbox"
)

var (
	// ErrScriptNotFound is the sentinel error wrapped by ScriptNotFoundError.
	ErrScriptNotFound = errors.New("script not found")

	// ErrCheckFailed is the sentinel error wrapped by CheckError.
	ErrCheckFailed = errors.New("script returned non-zero exit status")

	// ErrSandboxRestore marks a failure to restore process state after an
	// in-process run. It never occurs in correct operation; treat it as a
	// fatal internal bug. Aliased from the sandbox package so callers only
	// need this package for error classification.
	ErrSandboxRestore = sandbox.ErrRestore
)

type (
	// ScriptNotFoundError is returned when a command cannot be resolved to
	// a registered entry point, an executable on the search path, or an
	// existing file relative to the working directory.
	ScriptNotFoundError struct {
		Command string
		Cause   error
	}

	// CheckError is returned by Run when the check option is set and the
	// script finished with a non-zero return code. It carries the captured
	// streams so the caller can inspect what happened even though the call
	// failed.
	CheckError struct {
		Argv       []string
		Returncode ExitCode
		Stdout     string
		Stderr     string
	}
)

// Error implements the error interface.
func (e *ScriptNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("script %q not found: %v", e.Command, e.Cause)
	}
	return fmt.Sprintf("script %q not found", e.Command)
}

// Unwrap returns ErrScriptNotFound so callers can use errors.Is for programmatic detection.
func (e *ScriptNotFoundError) Unwrap() error { return ErrScriptNotFound }

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("command %q returned non-zero exit status %d",
		strings.Join(e.Argv, " "), e.Returncode)
}

// Unwrap returns ErrCheckFailed so callers can use errors.Is for programmatic detection.
func (e *CheckError) Unwrap() error { return ErrCheckFailed }
