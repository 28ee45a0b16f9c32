// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"os"
	"path/filepath"
	"testing"

	"conscript/internal/config"
)

// WithEachMode runs fn once per launch mode the configuration tiers resolve
// to, each as a named subtest with an independently constructed ScriptRunner
// rooted at a fresh scratch directory. marker is the per-test tier (empty
// means unset); the global option and config default tiers come from the
// environment and conscript.toml.
//
// A resolved value of "both" yields exactly two subtests, "inprocess" and
// "subprocess"; the runs are indistinguishable to the test body except for
// the runner's Mode. An unrecognized mode value fails the test immediately,
// before any script runs.
func WithEachMode(t *testing.T, marker string, fn func(t *testing.T, sr *ScriptRunner)) {
	t.Helper()

	settings, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load harness configuration: %v", err)
	}

	modes, err := ResolveModes(marker, settings.OptionMode, settings.DefaultMode)
	if err != nil {
		t.Fatalf("failed to resolve launch mode: %v", err)
	}

	for _, mode := range modes {
		t.Run(string(mode), func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "script-cwd")
			if err := os.Mkdir(root, 0o755); err != nil {
				t.Fatalf("failed to create scratch directory: %v", err)
			}

			sr, err := New(mode, root)
			if err != nil {
				t.Fatalf("failed to construct script runner: %v", err)
			}
			sr.PrintResult = !settings.HideRunResults

			fn(t, sr)
		})
	}
}
