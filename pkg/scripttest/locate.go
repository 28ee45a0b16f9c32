// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"os"
	"path/filepath"
	"strings"

	"conscript/internal/platform"
)

// locateScript resolves a command identifier to a concrete filesystem path.
// Resolution order:
//  1. search the directories of the effective PATH for an executable match
//  2. resolve the command relative to cwd (or the ambient working
//     directory) and require the resulting file to exist
//
// A command that already contains a path separator skips the PATH search
// and is checked directly. The effective PATH is taken from the env
// override when it carries a PATH entry, otherwise from the ambient
// environment. Because installed commands are consulted before the working
// directory, a locally present script loses to a like-named installed
// command unless the command is given as a path.
func locateScript(command, cwd string, env map[string]string) (string, error) {
	if path, ok := which(command, effectivePath(env)); ok {
		return path, nil
	}

	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", &ScriptNotFoundError{Command: command, Cause: err}
		}
		cwd = wd
	}

	candidate := command
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(cwd, candidate)
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", &ScriptNotFoundError{Command: command, Cause: err}
	}
	if _, err := os.Stat(abs); err != nil {
		return "", &ScriptNotFoundError{Command: command, Cause: err}
	}
	return abs, nil
}

// effectivePath returns the PATH value command resolution should search.
// An env override without a PATH entry falls back to the ambient PATH.
func effectivePath(env map[string]string) string {
	if env != nil {
		if path, ok := env["PATH"]; ok {
			return path
		}
	}
	return os.Getenv("PATH")
}

// which searches pathList for an executable named command, mirroring the
// usual which(1) semantics. Commands containing a path separator are
// checked directly instead of searched.
func which(command, pathList string) (string, bool) {
	if strings.ContainsRune(command, '/') || strings.ContainsRune(command, os.PathSeparator) {
		if info, err := os.Stat(command); err == nil && platform.IsExecutable(command, info) {
			return command, true
		}
		return "", false
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, command)
		if info, err := os.Stat(candidate); err == nil && platform.IsExecutable(candidate, info) {
			return candidate, true
		}
		if platform.IsWindows() {
			for _, ext := range platform.PathExts() {
				withExt := candidate + ext
				if info, err := os.Stat(withExt); err == nil && platform.IsExecutable(withExt, info) {
					return withExt, true
				}
			}
		}
	}
	return "", false
}
