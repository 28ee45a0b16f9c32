// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"fmt"
	"io"
)

// RunResult is the outcome of one Run call. It is created exactly once per
// run, never mutated afterwards, and owned by the caller.
type RunResult struct {
	// Returncode is the script's exit status: 0 for success, 1 for
	// uncaught faults and string-valued abnormal exits, any explicit
	// integer code otherwise. Identical meaning in both launch modes.
	Returncode ExitCode
	// Stdout is everything the script wrote to standard output.
	Stdout string
	// Stderr is everything the script wrote to standard error.
	Stderr string
}

// newRunResult builds a RunResult from a computed return code and the
// captured streams.
func newRunResult(code ExitCode, stdout, stderr string) *RunResult {
	return &RunResult{Returncode: code, Stdout: stdout, Stderr: stderr}
}

// Success reports whether the script exited with status 0.
func (r *RunResult) Success() bool {
	return r.Returncode.IsSuccess()
}

// StdoutBytes returns the captured standard output as raw bytes, for
// scripts that emit binary data rather than text.
func (r *RunResult) StdoutBytes() []byte { return []byte(r.Stdout) }

// StderrBytes returns the captured standard error as raw bytes.
func (r *RunResult) StderrBytes() []byte { return []byte(r.Stderr) }

// Echo writes a diagnostic summary of the result to w. The format is stable
// so existing suites can assert on substrings such as
// "# Script return code: 1".
func (r *RunResult) Echo(w io.Writer) {
	fmt.Fprintln(w, "# Script return code:", int(r.Returncode))
	fmt.Fprintln(w, "# Script stdout:")
	fmt.Fprintln(w, r.Stdout)
	fmt.Fprintln(w, "# Script stderr:")
	fmt.Fprintln(w, r.Stderr)
}
