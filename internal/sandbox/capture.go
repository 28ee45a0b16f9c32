// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"bytes"
	"io"
	"os"
)

// Capture accumulates everything written to a rebound standard stream.
// Its contents are final only after the owning Sandbox has been restored.
type Capture struct {
	buf  bytes.Buffer
	done chan struct{}
}

func newCapture(r *os.File) *Capture {
	c := &Capture{done: make(chan struct{})}
	go func() {
		defer close(c.done)
		// Copy until the write end is closed by the undo step. A read error
		// truncates the capture but must not wedge restoration.
		_, _ = io.Copy(&c.buf, r)
		_ = r.Close()
	}()
	return c
}

// wait blocks until the drain goroutine has seen EOF.
func (c *Capture) wait() {
	<-c.done
}

// String returns the captured text. Call only after Sandbox.Restore.
func (c *Capture) String() string {
	return c.buf.String()
}

// Bytes returns the raw captured bytes. Call only after Sandbox.Restore.
func (c *Capture) Bytes() []byte {
	return c.buf.Bytes()
}
