// SPDX-License-Identifier: MPL-2.0

package scripttest

import (
	"errors"
	"strings"
	"testing"
)

func TestInvokeNormalReturn(t *testing.T) {
	t.Parallel()

	oc := invoke(func() (ExitCode, error) { return 3, nil })
	if oc.kind != normalReturn {
		t.Fatalf("outcome kind = %d, want normalReturn", oc.kind)
	}
	if oc.code != 3 {
		t.Errorf("outcome code = %d, want 3", oc.code)
	}
}

func TestInvokeFaultErr(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	oc := invoke(func() (ExitCode, error) { return 0, boom })
	if oc.kind != faultErr {
		t.Fatalf("outcome kind = %d, want faultErr", oc.kind)
	}
	if !errors.Is(oc.err, boom) {
		t.Errorf("outcome err = %v, want %v", oc.err, boom)
	}
}

func TestInvokeCatchesExitSignal(t *testing.T) {
	t.Parallel()

	oc := invoke(func() (ExitCode, error) {
		Exit(42)
		return 0, nil
	})
	if oc.kind != requestedExit {
		t.Fatalf("outcome kind = %d, want requestedExit", oc.kind)
	}
	if code, ok := oc.signal.code.(int); !ok || code != 42 {
		t.Errorf("signal code = %v, want 42", oc.signal.code)
	}
}

func TestInvokeCatchesForeignPanic(t *testing.T) {
	t.Parallel()

	oc := invoke(func() (ExitCode, error) {
		panic("unexpected failure")
	})
	if oc.kind != faultPanic {
		t.Fatalf("outcome kind = %d, want faultPanic", oc.kind)
	}
	if oc.panicVal != "unexpected failure" {
		t.Errorf("panic value = %v", oc.panicVal)
	}
	if len(oc.stack) == 0 {
		t.Error("no stack captured for panic outcome")
	}
}

func TestElideExecutorFrames(t *testing.T) {
	t.Parallel()

	oc := invoke(func() (ExitCode, error) {
		panic("trace me")
	})
	trace := string(elideExecutorFrames(oc.stack))

	for _, hidden := range []string{
		"runtime/debug.Stack",
		"conscript/pkg/scripttest.invoke",
	} {
		if strings.Contains(trace, hidden) {
			t.Errorf("elided trace still contains %q:\n%s", hidden, trace)
		}
	}
	// The script's own frame survives.
	if !strings.Contains(trace, "TestElideExecutorFrames") {
		t.Errorf("elided trace lost the script frame:\n%s", trace)
	}
}
