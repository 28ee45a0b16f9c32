// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known failure class.
type Id int

// Known failure classes surfaced to users with fix suggestions.
const (
	ScriptNotFoundId Id = iota + 1
	InvalidLaunchModeId
	ConfigLoadFailedId
	SandboxRestoreFailedId
	InterpreterNotFoundId
	CheckFailedId
)

// Issue couples a failure class with the guidance shown for it.
type Issue struct {
	id          Id
	summary     string
	suggestions []string
}

// Id returns the issue's identifier.
func (i *Issue) Id() Id { return i.id }

// Summary returns the one-line description of the failure class.
func (i *Issue) Summary() string { return i.summary }

// Suggestions returns the fix suggestions for the failure class.
func (i *Issue) Suggestions() []string { return slices.Clone(i.suggestions) }

// Render returns the issue as display text: the summary followed by
// bulleted suggestions.
func (i *Issue) Render() string {
	var b strings.Builder
	b.WriteString(i.summary)
	for _, s := range i.suggestions {
		b.WriteString("\n  • ")
		b.WriteString(s)
	}
	return b.String()
}

var catalog = map[Id]*Issue{
	ScriptNotFoundId: {
		id:      ScriptNotFoundId,
		summary: "The command could not be resolved to an entry point, an executable on PATH, or a file in the working directory.",
		suggestions: []string{
			"Pass the command as a path if a local script shadows an installed command",
			"Check that the script's directory is on PATH, or use --cwd",
		},
	},
	InvalidLaunchModeId: {
		id:      InvalidLaunchModeId,
		summary: "The configured launch mode is not one of: inprocess, subprocess, both.",
		suggestions: []string{
			"Fix the script_launch_mode value in conscript.toml or CONSCRIPT_LAUNCH_MODE",
		},
	},
	ConfigLoadFailedId: {
		id:      ConfigLoadFailedId,
		summary: "The configuration file could not be loaded.",
		suggestions: []string{
			"Check the TOML syntax of conscript.toml",
		},
	},
	SandboxRestoreFailedId: {
		id:      SandboxRestoreFailedId,
		summary: "Process state could not be fully restored after an in-process run; subsequent tests may be corrupted.",
		suggestions: []string{
			"Treat this as a bug in the harness and report it with the run's output",
		},
	},
	InterpreterNotFoundId: {
		id:      InterpreterNotFoundId,
		summary: "The script is not executable and no interpreter for its suffix was found on PATH.",
		suggestions: []string{
			"Set the execute bit on the script, or install the interpreter",
		},
	},
	CheckFailedId: {
		id:      CheckFailedId,
		summary: "The script returned a non-zero exit status and check mode was requested.",
		suggestions: []string{
			"Inspect the captured stdout/stderr carried by the error",
		},
	},
}

// Lookup returns the Issue for id.
func Lookup(id Id) (*Issue, bool) {
	i, ok := catalog[id]
	return i, ok
}

// Ids returns all known issue identifiers in ascending order.
func Ids() []Id {
	ids := maps.Keys(catalog)
	slices.Sort(ids)
	return ids
}
