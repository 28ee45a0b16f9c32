// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"conscript/internal/platform"
	"conscript/internal/testutil"
)

// newSubprocessRunner builds a quiet subprocess runner rooted at a scratch
// directory. The subprocess tests exercise real child processes and need a
// POSIX sh, so they skip on Windows.
func newSubprocessRunner(t *testing.T) *ScriptRunner {
	t.Helper()
	if platform.IsWindows() {
		t.Skip("subprocess tests need a POSIX sh")
	}
	sr, err := New(Subprocess, t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sr.PrintResult = false
	return sr
}

func TestSubprocessCapturesStreams(t *testing.T) {
	sr := newSubprocessRunner(t)
	script := filepath.Join(sr.Rootdir(), "streams")
	testutil.MustWriteScript(t, script,
		"#!/bin/sh\necho to stdout\necho to stderr >&2\nexit 7\n")

	res, err := sr.Run("streams", WithEnv(map[string]string{"PATH": sr.Rootdir()}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Returncode != 7 {
		t.Errorf("Returncode = %d, want 7", res.Returncode)
	}
	if res.Stdout != "to stdout\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "to stdout\n")
	}
	if res.Stderr != "to stderr\n" {
		t.Errorf("Stderr = %q, want %q", res.Stderr, "to stderr\n")
	}
}

func TestSubprocessArgs(t *testing.T) {
	sr := newSubprocessRunner(t)
	script := filepath.Join(sr.Rootdir(), "args")
	testutil.MustWriteScript(t, script,
		"#!/bin/sh\nprintf '%s|' \"$@\"\necho\n")

	res, err := sr.Run([]string{"args", "--flag", "a b"},
		WithEnv(map[string]string{"PATH": sr.Rootdir()}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := res.Stdout, "--flag|a b|\n"; got != want {
		t.Errorf("Stdout = %q, want %q", got, want)
	}
}

func TestSubprocessStdin(t *testing.T) {
	sr := newSubprocessRunner(t)
	script := filepath.Join(sr.Rootdir(), "echoer")
	testutil.MustWriteScript(t, script,
		"#!/bin/sh\nread line\necho \"simon says $line\"\n")

	res, err := sr.Run("echoer",
		WithEnv(map[string]string{"PATH": sr.Rootdir()}),
		WithStdin(strings.NewReader("jump\n")))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Stdout != "simon says jump\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "simon says jump\n")
	}
}

func TestSubprocessCwd(t *testing.T) {
	sr := newSubprocessRunner(t)
	testutil.MustWriteScript(t, filepath.Join(sr.Rootdir(), "where"),
		"#!/bin/sh\npwd\n")

	res, err := sr.Run("where",
		WithEnv(map[string]string{"PATH": sr.Rootdir()}),
		WithCwd(sr.Rootdir()))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got, err := filepath.EvalSymlinks(strings.TrimSuffix(res.Stdout, "\n"))
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	want, err := filepath.EvalSymlinks(sr.Rootdir())
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	if got != want {
		t.Errorf("script ran in %q, want %q", got, want)
	}
}

func TestSubprocessEnvReplaced(t *testing.T) {
	sr := newSubprocessRunner(t)
	testutil.MustWriteScript(t, filepath.Join(sr.Rootdir(), "env"),
		"#!/bin/sh\necho \"MAGIC=$MAGIC\"\necho \"HOME=$HOME\"\n")

	res, err := sr.Run("env", WithEnv(map[string]string{
		"PATH":  sr.Rootdir(),
		"MAGIC": "42",
	}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(res.Stdout, "MAGIC=42\n") {
		t.Errorf("override not visible to script:\n%s", res.Stdout)
	}
	if !strings.Contains(res.Stdout, "HOME=\n") {
		t.Errorf("ambient variable leaked into replaced environment:\n%s", res.Stdout)
	}
}

func TestSubprocessInterpreterForNonExecutableScript(t *testing.T) {
	sr := newSubprocessRunner(t)
	script := filepath.Join(sr.Rootdir(), "plain.sh")
	testutil.MustWriteFile(t, script, "echo \"ran $1\"\nexit 3\n", 0o644)

	res, err := sr.Run([]string{"./plain.sh", "indirectly"}, WithCwd(sr.Rootdir()))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Returncode != 3 {
		t.Errorf("Returncode = %d, want 3", res.Returncode)
	}
	if res.Stdout != "ran indirectly\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "ran indirectly\n")
	}
}

func TestSubprocessCheck(t *testing.T) {
	sr := newSubprocessRunner(t)
	testutil.MustWriteScript(t, filepath.Join(sr.Rootdir(), "failing"),
		"#!/bin/sh\necho went sideways >&2\nexit 2\n")

	_, err := sr.Run("failing",
		WithEnv(map[string]string{"PATH": sr.Rootdir()}),
		WithCheck())
	if err == nil {
		t.Fatal("Run() with check returned nil error for non-zero exit")
	}
	if !errors.Is(err, ErrCheckFailed) {
		t.Errorf("error does not wrap ErrCheckFailed: %v", err)
	}
	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("error is not a CheckError: %v", err)
	}
	if checkErr.Returncode != 2 {
		t.Errorf("CheckError.Returncode = %d, want 2", checkErr.Returncode)
	}
	if checkErr.Stderr != "went sideways\n" {
		t.Errorf("CheckError.Stderr = %q", checkErr.Stderr)
	}
}

func TestSubprocessScriptNotFound(t *testing.T) {
	sr := newSubprocessRunner(t)

	_, err := sr.Run("no-such-command-anywhere",
		WithEnv(map[string]string{"PATH": sr.Rootdir()}),
		WithCwd(sr.Rootdir()))
	if err == nil {
		t.Fatal("Run() for missing command returned nil error")
	}
	if !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("error does not wrap ErrScriptNotFound: %v", err)
	}
}

func TestSubprocessIgnoresEntryPointRegistry(t *testing.T) {
	registerTestCommand(t, "registry-only-cmd", func() int { return 0 })
	sr := newSubprocessRunner(t)

	_, err := sr.Run("registry-only-cmd",
		WithEnv(map[string]string{"PATH": sr.Rootdir()}))
	if !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("subprocess mode resolved a registry-only command: err = %v", err)
	}
}
