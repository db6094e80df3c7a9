// Package uid synthesizes stable identities for source buffers that
// have no file path, e.g. an unsaved editor buffer or a REPL paste.
package uid

import "github.com/google/uuid"

// SyntheticName returns a unique identity for an unnamed buffer. The
// name is stable for the lifetime of the buffer's lint pass chain and
// recognizable in diagnostics.
func SyntheticName() string {
	return "untitled-" + uuid.NewString() + ".nu"
}

// OrSynthetic returns name unchanged when non-empty, otherwise a fresh
// synthetic identity.
func OrSynthetic(name string) string {
	if name != "" {
		return name
	}
	return SyntheticName()
}
