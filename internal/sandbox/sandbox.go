// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

var (
	// ErrBusy is returned by Acquire when another Sandbox is already active.
	// In-process runs borrow the process exclusively; overlapping runs would
	// corrupt each other's saved state.
	ErrBusy = errors.New("sandbox already active")

	// ErrRestore is the sentinel wrapped by restoration failures. A restore
	// failure means process state may have leaked into the next test and is
	// always an internal bug, never an expected outcome.
	ErrRestore = errors.New("sandbox restoration failed")
)

// inUse enforces the single-active-sandbox precondition.
var inUse atomic.Bool

// Sandbox is a stack of reversible overrides of process-wide state.
// The zero value is not usable; call Acquire.
type Sandbox struct {
	undo []func() error
}

// Acquire claims the process for a new Sandbox. It fails with ErrBusy if
// another Sandbox has been acquired and not yet restored.
func Acquire() (*Sandbox, error) {
	if !inUse.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return &Sandbox{}, nil
}

// push records an undo step. Steps run in reverse order on Restore.
func (s *Sandbox) push(undo func() error) {
	s.undo = append(s.undo, undo)
}

// SetArgs rebinds os.Args to argv for the duration of the sandbox.
func (s *Sandbox) SetArgs(argv []string) {
	old := os.Args
	os.Args = argv
	s.push(func() error {
		os.Args = old
		return nil
	})
}

// RedirectStdin rebinds os.Stdin to a pipe fed from input. A nil input
// yields an immediately exhausted stdin.
func (s *Sandbox) RedirectStdin(input io.Reader) error {
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if input != nil {
			// An error here means the script stopped reading; that is the
			// script's business, not ours.
			_, _ = io.Copy(w, input)
		}
		_ = w.Close()
	}()

	old := os.Stdin
	os.Stdin = r
	s.push(func() error {
		os.Stdin = old
		// Closing the read end unblocks the feeder if the script left
		// input unconsumed.
		err := r.Close()
		<-done
		if err != nil {
			return fmt.Errorf("failed to close stdin pipe: %w", err)
		}
		return nil
	})
	return nil
}

// CaptureStdout rebinds os.Stdout to an in-memory capture.
// The returned Capture is complete once Restore has run.
func (s *Sandbox) CaptureStdout() (*Capture, error) {
	return s.captureStream(&os.Stdout)
}

// CaptureStderr rebinds os.Stderr to an in-memory capture.
// The returned Capture is complete once Restore has run.
func (s *Sandbox) CaptureStderr() (*Capture, error) {
	return s.captureStream(&os.Stderr)
}

func (s *Sandbox) captureStream(stream **os.File) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create capture pipe: %w", err)
	}

	c := newCapture(r)

	old := *stream
	*stream = w
	s.push(func() error {
		*stream = old
		// Closing the write end lets the drain goroutine hit EOF; wait for
		// it so the capture is complete before control returns.
		err := w.Close()
		c.wait()
		if err != nil {
			return fmt.Errorf("failed to close capture pipe: %w", err)
		}
		return nil
	})
	return c, nil
}

// ReplaceEnv clears the ambient environment and repopulates it from env.
// The original environment is restored verbatim on Restore.
func (s *Sandbox) ReplaceEnv(env map[string]string) error {
	old := os.Environ()
	os.Clearenv()
	for k, v := range env {
		if err := os.Setenv(k, v); err != nil {
			// Roll back immediately; Restore would otherwise see a
			// half-installed environment.
			restoreEnviron(old)
			return fmt.Errorf("failed to set environment variable %q: %w", k, err)
		}
	}
	s.push(func() error {
		return restoreEnviron(old)
	})
	return nil
}

func restoreEnviron(environ []string) error {
	os.Clearenv()
	var errs []error
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore environment variable %q: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// Chdir changes the working directory to dir and guarantees restoration of
// the original directory on Restore.
func (s *Sandbox) Chdir(dir string) error {
	old, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to change directory to %s: %w", dir, err)
	}
	s.push(func() error {
		if err := os.Chdir(old); err != nil {
			return fmt.Errorf("failed to restore directory to %s: %w", old, err)
		}
		return nil
	})
	return nil
}

// Restore reverts every active override in reverse order of acquisition and
// releases the sandbox. All undo steps run even if some fail; failures are
// aggregated and wrapped with ErrRestore.
func (s *Sandbox) Restore() error {
	var errs []error
	for i := len(s.undo) - 1; i >= 0; i-- {
		if err := s.undo[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.undo = nil
	inUse.Store(false)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrRestore, errors.Join(errs...))
	}
	return nil
}
