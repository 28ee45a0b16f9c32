// SPDX-License-Identifier: MPL-2.0

// Package sandbox swaps process-wide mutable state for the duration of an
// in-process script run and restores it afterwards.
//
// A Sandbox is a stack of independently reversible overrides: standard
// stream rebinding, os.Args, default logger configuration, the environment
// map, and the working directory. Restore reverts every active override in
// strict reverse order of acquisition, regardless of how the protected code
// terminated. Only one Sandbox may be active per process at a time; a second
// Acquire fails fast instead of corrupting the saved state.
package sandbox
