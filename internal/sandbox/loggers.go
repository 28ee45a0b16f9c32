// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"log"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// loggerSnapshot captures the configuration of the process-default loggers:
// the standard library log package, the slog default, and the charmbracelet
// default used for harness diagnostics.
type loggerSnapshot struct {
	stdFlags  int
	stdPrefix string
	stdWriter interface{ Write([]byte) (int, error) }
	slogPrev  *slog.Logger
	charmPrev *charmlog.Logger
}

// ResetLoggers snapshots the default loggers and reinstalls fresh ones bound
// to the current os.Stderr. Because ResetLoggers runs after CaptureStderr,
// anything the script logs through a default logger lands in the captured
// stderr rather than the test runner's terminal. The previous configuration
// is restored bit for bit on Restore.
func (s *Sandbox) ResetLoggers() {
	snap := loggerSnapshot{
		stdFlags:  log.Flags(),
		stdPrefix: log.Prefix(),
		stdWriter: log.Writer(),
		slogPrev:  slog.Default(),
		charmPrev: charmlog.Default(),
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("")
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	charmlog.SetDefault(charmlog.New(os.Stderr))

	s.push(func() error {
		log.SetOutput(snap.stdWriter)
		log.SetFlags(snap.stdFlags)
		log.SetPrefix(snap.stdPrefix)
		slog.SetDefault(snap.slogPrev)
		charmlog.SetDefault(snap.charmPrev)
		return nil
	})
}
