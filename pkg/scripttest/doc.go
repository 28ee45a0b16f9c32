// SPDX-License-Identifier: MPL-2.0

// Package scripttest lets a test suite invoke a command-line program and
// inspect its exit code, standard output, and standard error.
//
// A program can be launched two ways, selected by the ScriptRunner's
// LaunchMode:
//   - inprocess: the command is run inside the test process. Registered
//     entry points are called directly; script files are executed by an
//     embedded shell interpreter (mvdan/sh). Process-wide state the script
//     can observe or mutate (stdio, os.Args, environment, working
//     directory, default loggers) is swapped in for the run and restored
//     unconditionally afterwards.
//   - subprocess: the command is spawned as a real child process with piped
//     stdio.
//
// Both modes produce the same RunResult contract, so a well-behaved script
// is indistinguishable between them except for the reported launch mode.
//
// Basic usage:
//
//	func TestFrobnicate(t *testing.T) {
//	    scripttest.WithEachMode(t, "", func(t *testing.T, sr *scripttest.ScriptRunner) {
//	        res, err := sr.Run([]string{"frobnicate", "--dry-run"})
//	        if err != nil {
//	            t.Fatal(err)
//	        }
//	        if !res.Success() {
//	            t.Fatalf("exit code %d, stderr: %s", res.Returncode, res.Stderr)
//	        }
//	    })
//	}
package scripttest
