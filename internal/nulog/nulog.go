// Package nulog configures the process-wide logger and provides a bounded
// tail buffer so the last log lines written during a lint pass can be
// attached to internal-crash diagnostics.
package nulog

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w at the given level. On a TTY the
// text formatter is used; otherwise JSON, so piped output stays
// machine-readable.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		log.SetFormatter(&logrus.TextFormatter{})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// Default returns a stderr logger at warn level, the baseline for CLI
// invocations without --verbose.
func Default() *logrus.Logger {
	return New(os.Stderr, logrus.WarnLevel)
}

// DefaultTailLimit bounds the crash tail buffer: enough for a rule's
// last few log lines without letting a chatty pass grow the report.
const DefaultTailLimit = 4096

// WithTail wraps log so that everything it writes is also retained in a
// bounded tail buffer. The returned TailBuffer holds the last limit
// bytes; engine attaches its contents to rule-crash diagnostics.
func WithTail(log *logrus.Logger, limit int) *TailBuffer {
	tail := NewTailBuffer(limit)
	log.SetOutput(io.MultiWriter(log.Out, tail))
	return tail
}
