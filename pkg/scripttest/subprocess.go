// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"conscript/internal/platform"
)

// subprocessExecutor spawns the command as a genuine child process with
// piped stdio, feeds the optional input, waits for completion, and maps the
// exit status into the shared result contract.
type subprocessExecutor struct{}

// scriptInterpreters maps recognized script suffixes to the interpreter
// that runs them when the script file itself lacks the execute bit.
var scriptInterpreters = map[string]string{
	".sh":   "sh",
	".bash": "bash",
}

func (e *subprocessExecutor) run(req *execRequest) (*RunResult, error) {
	var input []byte
	if req.stdin != nil {
		b, err := io.ReadAll(req.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin input: %w", err)
		}
		input = b
	}

	path, err := locateScript(req.argv[0], req.cwd, req.env)
	if err != nil {
		return nil, err
	}

	argv := slices.Clone(req.argv)
	execPath := path
	if interpreter, ok := interpreterFor(path); ok {
		interpreterPath, err := exec.LookPath(interpreter)
		if err != nil {
			return nil, fmt.Errorf("interpreter %q for script %s not found: %w", interpreter, path, err)
		}
		argv = append([]string{interpreter, path}, argv[1:]...)
		execPath = interpreterPath
	}

	cmd := &exec.Cmd{
		Path: execPath,
		Args: argv,
		Dir:  req.cwd,
	}
	if req.env != nil {
		cmd.Env = envToSlice(req.env)
	}
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var code ExitCode
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to execute command %q: %w", req.argv[0], err)
		}
		code = ExitCode(exitErr.ExitCode())
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

// interpreterFor reports the interpreter to prefix for a script that cannot
// be executed directly: a text script with a recognized suffix and no
// execute permission.
func interpreterFor(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || platform.IsExecutable(path, info) {
		return "", false
	}
	interpreter, ok := scriptInterpreters[strings.ToLower(filepath.Ext(path))]
	return interpreter, ok
}

// envToSlice converts an environment map to the KEY=VALUE slice form that
// os/exec consumes.
func envToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	return result
}
