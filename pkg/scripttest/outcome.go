// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"bytes"
	"runtime/debug"
)

// outcomeKind tags the three ways a loaded script can terminate. All three
// are caught at the same executor boundary and translated into the uniform
// numeric contract.
type outcomeKind int

const (
	// normalReturn: the thunk returned an exit code.
	normalReturn outcomeKind = iota
	// requestedExit: the script called Exit.
	requestedExit
	// faultErr: the thunk reported an execution fault as an error.
	faultErr
	// faultPanic: the script panicked with something other than an exit
	// signal.
	faultPanic
)

// outcome is the tagged termination result of invoking a thunk.
type outcome struct {
	kind     outcomeKind
	code     ExitCode  // normalReturn
	signal   *exitSignal // requestedExit
	err      error     // faultErr
	panicVal any       // faultPanic
	stack    []byte    // faultPanic
}

// invoke runs the loaded script and captures its termination as a tagged
// outcome. Panics never propagate past this boundary.
func invoke(fn thunk) (oc outcome) {
	defer func() {
		if v := recover(); v != nil {
			if sig, ok := v.(*exitSignal); ok {
				oc = outcome{kind: requestedExit, signal: sig}
				return
			}
			oc = outcome{kind: faultPanic, panicVal: v, stack: debug.Stack()}
		}
	}()

	code, err := fn()
	if err != nil {
		return outcome{kind: faultErr, err: err}
	}
	return outcome{kind: normalReturn, code: code}
}

// executorFramePrefixes identify stack frames belonging to the executor
// machinery itself. They are elided from printed panic traces so the
// script's own frames stay front and center.
var executorFramePrefixes = []string{
	"runtime/debug.Stack",
	"conscript/pkg/scripttest.invoke",
	"conscript/pkg/scripttest.(*inProcessExecutor)",
	"conscript/pkg/scripttest.(*ScriptRunner)",
}

// elideExecutorFrames removes this package's own frames from a goroutine
// stack dump. Frames come in pairs: a function line followed by an indented
// file:line line.
func elideExecutorFrames(stack []byte) []byte {
	lines := bytes.Split(stack, []byte("\n"))
	var out [][]byte
	skipNext := false
	for _, line := range lines {
		if skipNext {
			skipNext = false
			continue
		}
		if isExecutorFrame(line) {
			skipNext = true
			continue
		}
		out = append(out, line)
	}
	return bytes.Join(out, []byte("\n"))
}

func isExecutorFrame(line []byte) bool {
	for _, prefix := range executorFramePrefixes {
		if bytes.HasPrefix(line, []byte(prefix)) {
			return true
		}
	}
	return false
}
