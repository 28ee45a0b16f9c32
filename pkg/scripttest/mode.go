// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"errors"
	"fmt"
)

// Launch mode constants for the two ways a script can be invoked.
const (
	// InProcess runs the script inside the test process.
	InProcess LaunchMode = "inprocess"
	// Subprocess spawns the script as a real OS process.
	Subprocess LaunchMode = "subprocess"

	// modeBoth is a configuration value only, never a ScriptRunner mode:
	// it fans a test out into one run per concrete mode.
	modeBoth = "both"
)

// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
var ErrInvalidMode = errors.New("invalid launch mode")

type (
	// LaunchMode selects how a ScriptRunner invokes its target program.
	// It is fixed at construction time.
	LaunchMode string

	// InvalidModeError is returned when a configured launch mode string is
	// not one of "inprocess", "subprocess", or "both".
	InvalidModeError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid launch mode %q (must be inprocess, subprocess, or both)", e.Value)
}

// Unwrap returns ErrInvalidMode so callers can use errors.Is for programmatic detection.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// IsValid returns whether the LaunchMode is one of the two concrete modes.
func (m LaunchMode) IsValid() bool {
	return m == InProcess || m == Subprocess
}

// ResolveModes computes the launch mode(s) a test should run under from the
// three configuration tiers, in fixed priority order:
//
//	per-test marker > global option > config default > "inprocess"
//
// Each tier is an optional string; the empty string means "not set".
// The resolved value "both" yields both concrete modes, in which case the
// caller must execute the test once per mode with independently constructed
// ScriptRunners. Any other unrecognized value is an InvalidModeError.
func ResolveModes(markMode, optionMode, configMode string) ([]LaunchMode, error) {
	mode := markMode
	if mode == "" {
		mode = optionMode
	}
	if mode == "" {
		mode = configMode
	}
	if mode == "" {
		mode = string(InProcess)
	}

	switch mode {
	case string(InProcess), string(Subprocess):
		return []LaunchMode{LaunchMode(mode)}, nil
	case modeBoth:
		return []LaunchMode{InProcess, Subprocess}, nil
	default:
		return nil, &InvalidModeError{Value: mode}
	}
}
