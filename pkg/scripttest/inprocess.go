// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"fmt"
	"os"

	"conscript/internal/sandbox"
)

// inProcessExecutor runs scripts inside the test process: the command is
// loaded as an invocable, the sandbox swaps in process state resembling a
// fresh process (argv, stdio, loggers, optionally env and cwd), and the
// script's termination is translated into a return code. The swap is
// reverted unconditionally before the result is built, whatever the script
// did.
type inProcessExecutor struct {
	lookup LookupFunc
}

func (e *inProcessExecutor) run(req *execRequest) (*RunResult, error) {
	script, err := loadScript(req.argv[0], req.cwd, req.env, e.lookup)
	if err != nil {
		return nil, err
	}

	sb, err := sandbox.Acquire()
	if err != nil {
		return nil, err
	}
	// Unwinds the overrides acquired so far when installing a later one
	// fails, e.g. a chdir to a nonexistent directory.
	fail := func(err error) (*RunResult, error) {
		if rerr := sb.Restore(); rerr != nil {
			return nil, rerr
		}
		return nil, err
	}

	if err := sb.RedirectStdin(req.stdin); err != nil {
		return fail(err)
	}
	stdout, err := sb.CaptureStdout()
	if err != nil {
		return fail(err)
	}
	stderr, err := sb.CaptureStderr()
	if err != nil {
		return fail(err)
	}
	sb.SetArgs(req.argv)
	sb.ResetLoggers()
	if req.env != nil {
		if err := sb.ReplaceEnv(req.env); err != nil {
			return fail(err)
		}
	}
	if req.cwd != "" {
		if err := sb.Chdir(req.cwd); err != nil {
			return fail(err)
		}
	}

	// translateOutcome writes abnormal-exit and fault messages to the
	// still-swapped os.Stderr, so they land in the captured stream.
	code := translateOutcome(invoke(script))

	if err := sb.Restore(); err != nil {
		// Process state may have leaked into subsequent tests. Never
		// swallowed, never retried.
		return nil, err
	}

	res := newRunResult(code, stdout.String(), stderr.String())
	if req.check && !code.IsSuccess() {
		return nil, &CheckError{
			Argv:       req.argv,
			Returncode: code,
			Stdout:     res.Stdout,
			Stderr:     res.Stderr,
		}
	}
	return res, nil
}

// translateOutcome maps a script's termination to its return code, writing
// any message text to the current stderr binding.
func translateOutcome(oc outcome) ExitCode {
	switch oc.kind {
	case normalReturn:
		return oc.code
	case requestedExit:
		switch code := oc.signal.code.(type) {
		case nil:
			return 0
		case int:
			return ExitCode(code)
		case ExitCode:
			return code
		default:
			// Non-numeric exit payloads are messages: stderr plus code 1.
			fmt.Fprintf(os.Stderr, "%v\n", code)
			return 1
		}
	case faultErr:
		fmt.Fprintf(os.Stderr, "%v\n", oc.err)
		return 1
	case faultPanic:
		fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", oc.panicVal, elideExecutorFrames(oc.stack))
		return 1
	default:
		return 1
	}
}
