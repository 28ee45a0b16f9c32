// SPDX-License-Identifier: EPL-2.0

// Package platform provides cross-platform compatibility utilities.
package platform

import (
	"io/fs"
	"os"
	"runtime"
	"strings"
)

// Windows is the GOOS value for Windows.
const Windows = "windows"

// defaultPathExt mirrors the cmd.exe default when PATHEXT is unset.
const defaultPathExt = ".COM;.EXE;.BAT;.CMD"

// IsWindows reports whether the current platform is Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}

// PathExts returns the lowercased executable extensions from PATHEXT.
// On non-Windows platforms it returns nil.
func PathExts() []string {
	if !IsWindows() {
		return nil
	}
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = defaultPathExt
	}
	var exts []string
	for _, e := range strings.Split(pathext, ";") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			exts = append(exts, e)
		}
	}
	return exts
}

// IsExecutable reports whether the file described by info can be invoked as
// a command. On Windows executability is determined by the file extension;
// elsewhere by the execute permission bits.
func IsExecutable(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if IsWindows() {
		lower := strings.ToLower(path)
		for _, ext := range PathExts() {
			if strings.HasSuffix(lower, ext) {
				return true
			}
		}
		return false
	}
	return info.Mode()&0o111 != 0
}
