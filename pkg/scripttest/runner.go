// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ScriptRunner invokes console scripts under a fixed launch mode and
// presents one uniform result contract for both modes.
type ScriptRunner struct {
	mode    LaunchMode
	rootdir string

	// PrintResult controls whether each run echoes a diagnostic summary of
	// its result. Individual runs can override it with WithPrintResult.
	PrintResult bool

	// EchoWriter receives the diagnostic echo; nil means os.Stdout.
	EchoWriter io.Writer

	lookup LookupFunc
}

// New constructs a ScriptRunner for one concrete launch mode rooted at
// rootdir (typically a per-test scratch directory). The mode is immutable
// for the runner's lifetime; "both" is a configuration value resolved by
// ResolveModes into two runners, never a runner mode.
func New(mode LaunchMode, rootdir string) (*ScriptRunner, error) {
	if !mode.IsValid() {
		return nil, &InvalidModeError{Value: string(mode)}
	}
	return &ScriptRunner{
		mode:        mode,
		rootdir:     rootdir,
		PrintResult: true,
		lookup:      LookupEntryPoint,
	}, nil
}

// Mode returns the runner's fixed launch mode.
func (r *ScriptRunner) Mode() LaunchMode { return r.mode }

// Rootdir returns the runner's working-directory root.
func (r *ScriptRunner) Rootdir() string { return r.rootdir }

// String implements fmt.Stringer.
func (r *ScriptRunner) String() string {
	return fmt.Sprintf("<ScriptRunner %s>", r.mode)
}

// Run invokes command under the runner's launch mode and returns its
// result. command may be a single string token or a pre-split []string
// argument vector.
//
// Script-level failures (non-zero exits, faults) are normal outcomes
// reported through the RunResult; Run returns a non-nil error only for
// harness-level failures (unresolvable command, invalid input, sandbox
// restoration) or, when WithCheck is set, a CheckError for a non-zero exit.
func (r *ScriptRunner) Run(command any, opts ...RunOption) (*RunResult, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	printResult := r.PrintResult
	if cfg.printResult != nil {
		printResult = *cfg.printResult
	}

	argv, err := handleCommandArgs(command, cfg.args, cfg.shell)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("empty command")
	}

	echo := r.echoWriter()
	if printResult {
		fmt.Fprintln(echo, "# Running console script:", strings.Join(argv, " "))
	}

	req := &execRequest{
		argv:  argv,
		cwd:   cfg.cwd,
		env:   cfg.env,
		stdin: cfg.stdin,
		check: cfg.check,
	}

	var res *RunResult
	switch r.mode {
	case InProcess:
		res, err = (&inProcessExecutor{lookup: r.lookup}).run(req)
	case Subprocess:
		res, err = (&subprocessExecutor{}).run(req)
	default:
		return nil, &InvalidModeError{Value: string(r.mode)}
	}
	if err != nil {
		// A check failure still echoes the captured result before the
		// error surfaces, so failing runs stay diagnosable.
		var checkErr *CheckError
		if printResult && errors.As(err, &checkErr) {
			newRunResult(checkErr.Returncode, checkErr.Stdout, checkErr.Stderr).Echo(echo)
		}
		return nil, err
	}

	if printResult {
		res.Echo(echo)
	}
	return res, nil
}

func (r *ScriptRunner) echoWriter() io.Writer {
	if r.EchoWriter != nil {
		return r.EchoWriter
	}
	return os.Stdout
}
