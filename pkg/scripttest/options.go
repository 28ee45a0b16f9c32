// SPDX-License-Identifier: MPL-2.0

package scripttest

import "io"

type (
	// RunOption configures a single Run call.
	RunOption func(*runConfig)

	// runConfig is the recognized option bag for one run.
	runConfig struct {
		args        []string
		cwd         string
		env         map[string]string
		stdin       io.Reader
		shell       bool
		check       bool
		printResult *bool
	}

	// execRequest bundles one run's normalized inputs for the executors.
	execRequest struct {
		argv  []string
		cwd   string
		env   map[string]string
		stdin io.Reader
		check bool
	}
)

// WithCwd runs the script in dir instead of the current directory.
func WithCwd(dir string) RunOption {
	return func(c *runConfig) { c.cwd = dir }
}

// WithEnv replaces the script's entire environment. Without this option the
// current process environment is used unchanged. The PATH entry, when
// present, also steers command resolution.
func WithEnv(env map[string]string) RunOption {
	return func(c *runConfig) { c.env = env }
}

// WithStdin feeds the script's standard input from r. Without this option
// input is empty.
func WithStdin(r io.Reader) RunOption {
	return func(c *runConfig) { c.stdin = r }
}

// WithShell tokenizes the command string following shell quoting rules
// before resolution, mimicking local shell argument splitting.
func WithShell() RunOption {
	return func(c *runConfig) { c.shell = true }
}

// WithCheck turns a non-zero exit into a returned CheckError instead of a
// result field, mirroring conventional process-invocation ergonomics.
func WithCheck() RunOption {
	return func(c *runConfig) { c.check = true }
}

// WithPrintResult overrides the runner's default for echoing a diagnostic
// summary of the result.
func WithPrintResult(print bool) RunOption {
	return func(c *runConfig) { c.printResult = &print }
}

// WithArgs appends additional arguments to the command.
//
// Deprecated: pass the command as a single pre-built []string vector
// instead; this calling form emits a warning.
func WithArgs(args ...string) RunOption {
	return func(c *runConfig) { c.args = append(c.args, args...) }
}
