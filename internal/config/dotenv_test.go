// SPDX-License-Identifier: MPL-2.0

package config

import (
	"path/filepath"
	"testing"

	"conscript/internal/testutil"
)

func TestParseEnvFile(t *testing.T) {
	t.Parallel()

	content := `# comment line
PLAIN=value
EMPTY=
export EXPORTED=yes
QUOTED="line1\nline2"
ESCAPED="a \"b\" \\ c"
SINGLE='no \n escapes'
SPACED =  trimmed
`
	env := map[string]string{"PLAIN": "will be overridden"}
	if err := ParseEnvFile(env, []byte(content), ".env"); err != nil {
		t.Fatalf("ParseEnvFile() error = %v", err)
	}

	want := map[string]string{
		"PLAIN":    "value",
		"EMPTY":    "",
		"EXPORTED": "yes",
		"QUOTED":   "line1\nline2",
		"ESCAPED":  `a "b" \ c`,
		"SINGLE":   `no \n escapes`,
		"SPACED":   "trimmed",
	}
	for key, wantVal := range want {
		got, ok := env[key]
		if !ok {
			t.Errorf("key %q missing", key)
			continue
		}
		if got != wantVal {
			t.Errorf("env[%q] = %q, want %q", key, got, wantVal)
		}
	}
}

func TestParseEnvFileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "missing equals", content: "NOVALUE\n"},
		{name: "empty key", content: "=value\n"},
		{name: "unterminated double quote", content: "KEY=\"open\n"},
		{name: "unterminated single quote", content: "KEY='open\n"},
		{name: "bad escape", content: `KEY="\x"` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := map[string]string{}
			if err := ParseEnvFile(env, []byte(tt.content), ".env"); err == nil {
				t.Error("ParseEnvFile() returned nil error")
			}
		})
	}
}

func TestLoadEnvFileRelative(t *testing.T) {
	t.Parallel()

	cwd := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(cwd, ".env"), "FROM_FILE=1\n", 0o644)

	env := map[string]string{}
	if err := LoadEnvFile(env, ".env", cwd); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if env["FROM_FILE"] != "1" {
		t.Errorf("env[%q] = %q, want %q", "FROM_FILE", env["FROM_FILE"], "1")
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	t.Parallel()

	env := map[string]string{}
	if err := LoadEnvFile(env, "absent.env", t.TempDir()); err == nil {
		t.Error("LoadEnvFile() for a missing required file returned nil error")
	}
	if err := LoadEnvFile(env, "absent.env?", t.TempDir()); err != nil {
		t.Errorf("LoadEnvFile() for a missing optional file: unexpected error %v", err)
	}
}
