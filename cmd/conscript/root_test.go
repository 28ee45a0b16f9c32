// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"conscript/internal/issue"
	"conscript/pkg/scripttest"

	"github.com/spf13/cobra"
)

func TestIssueForKnownFailureClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "script not found",
			err:  &scripttest.ScriptNotFoundError{Command: "mytool"},
			want: issue.ScriptNotFoundId,
		},
		{
			name: "invalid launch mode",
			err:  &scripttest.InvalidModeError{Value: "spawn"},
			want: issue.InvalidLaunchModeId,
		},
		{
			name: "check failed",
			err:  &scripttest.CheckError{Argv: []string{"mytool"}, Returncode: 2},
			want: issue.CheckFailedId,
		},
		{
			name: "sandbox restore",
			err:  scripttest.ErrSandboxRestore,
			want: issue.SandboxRestoreFailedId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			i, ok := issueFor(tt.err)
			if !ok {
				t.Fatalf("issueFor(%v) found no catalog entry", tt.err)
			}
			if i.Id() != tt.want {
				t.Errorf("issueFor(%v).Id() = %d, want %d", tt.err, i.Id(), tt.want)
			}
		})
	}
}

func TestIssueForUnknownError(t *testing.T) {
	t.Parallel()

	if _, ok := issueFor(errors.New("something else")); ok {
		t.Error("issueFor() matched an unclassified error")
	}
}

func TestFormatErrorForDisplayAppendsSuggestions(t *testing.T) {
	t.Parallel()

	err := &scripttest.ScriptNotFoundError{Command: "mytool"}
	got := formatErrorForDisplay(err, false)

	if !strings.Contains(got, err.Error()) {
		t.Errorf("formatted message lost the error text:\n%s", got)
	}
	want, _ := issue.Lookup(issue.ScriptNotFoundId)
	if !strings.Contains(got, want.Summary()) {
		t.Errorf("formatted message missing catalog summary:\n%s", got)
	}
	if !strings.Contains(got, "• ") {
		t.Errorf("formatted message missing suggestions:\n%s", got)
	}
}

func TestFormatErrorForDisplayActionableTakesPrecedence(t *testing.T) {
	t.Parallel()

	err := issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Check the TOML syntax").
		Wrap(errors.New("bad value")).
		Build()

	got := formatErrorForDisplay(err, false)
	if !strings.Contains(got, "failed to load configuration") {
		t.Errorf("ActionableError not formatted via Format():\n%s", got)
	}
}

func TestWithHintPrintsCatalogGuidance(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetErr(&buf)

	orig := &scripttest.InvalidModeError{Value: "spawn"}
	if err := withHint(cmd, orig); !errors.Is(err, scripttest.ErrInvalidMode) {
		t.Errorf("withHint() changed the error: %v", err)
	}
	want, _ := issue.Lookup(issue.InvalidLaunchModeId)
	if !strings.Contains(buf.String(), want.Summary()) {
		t.Errorf("hint output missing catalog summary:\n%s", buf.String())
	}

	buf.Reset()
	if err := withHint(cmd, errors.New("plain")); err == nil || buf.Len() != 0 {
		t.Errorf("withHint() on unclassified error: err = %v, output = %q", err, buf.String())
	}
}
