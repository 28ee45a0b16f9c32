// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunResultSuccess(t *testing.T) {
	t.Parallel()

	if !(&RunResult{Returncode: 0}).Success() {
		t.Error("RunResult{0}.Success() = false, want true")
	}
	if (&RunResult{Returncode: 2}).Success() {
		t.Error("RunResult{2}.Success() = true, want false")
	}
}

func TestRunResultEcho(t *testing.T) {
	t.Parallel()

	res := newRunResult(1, "out line\n", "err line\n")
	var buf bytes.Buffer
	res.Echo(&buf)

	got := buf.String()
	for _, want := range []string{
		"# Script return code: 1\n",
		"# Script stdout:\nout line\n",
		"# Script stderr:\nerr line\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Echo() output missing %q:\n%s", want, got)
		}
	}
}

func TestRunResultBytes(t *testing.T) {
	t.Parallel()

	res := newRunResult(0, "\x00\x01", "\xff")
	if got := res.StdoutBytes(); !bytes.Equal(got, []byte{0x00, 0x01}) {
		t.Errorf("StdoutBytes() = %v", got)
	}
	if got := res.StderrBytes(); !bytes.Equal(got, []byte{0xff}) {
		t.Errorf("StderrBytes() = %v", got)
	}
}
