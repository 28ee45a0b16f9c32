// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// handleCommandArgs normalizes the command/argument calling forms into one
// argument vector. command may be a single string token or a pre-split
// []string vector; extra holds arguments from the deprecated variadic
// calling form, which triggers a warning.
//
// If shellMode is set, the command line is re-tokenized following shell
// quoting rules, mimicking local shell argument splitting. A pre-split
// vector is first re-joined with shell quoting so the round trip is
// faithful.
func handleCommandArgs(command any, extra []string, shellMode bool) ([]string, error) {
	if shellMode {
		line, ok := command.(string)
		if !ok || len(extra) > 0 {
			argv, err := handleCommandArgs(command, extra, false)
			if err != nil {
				return nil, err
			}
			line, err = joinShellLine(argv)
			if err != nil {
				return nil, err
			}
		}
		fields, err := shell.Fields(line, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to tokenize command line %q: %w", line, err)
		}
		return fields, nil
	}

	if len(extra) > 0 {
		log.Warn("script runner commands should be passed as a single argument vector, " +
			"not as multiple arguments; replace Run(cmd, WithArgs(a, b)) with Run([]string{cmd, a, b})")
	}

	switch c := command.(type) {
	case string:
		return append([]string{c}, extra...), nil
	case []string:
		return append(slices.Clone(c), extra...), nil
	default:
		return nil, fmt.Errorf("command must be a string or a []string, got %T", command)
	}
}

// joinShellLine renders an argument vector back into a single shell line,
// quoting each word so tokenizing it again yields the same vector.
func joinShellLine(argv []string) (string, error) {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("failed to quote argument %q: %w", arg, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}
