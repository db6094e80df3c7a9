package nulog

import (
	"sync"

	"github.com/armon/circbuf"
)

// TailBuffer is an io.Writer that retains only the last N bytes written.
// It is safe for concurrent use.
type TailBuffer struct {
	mu  sync.Mutex
	buf *circbuf.Buffer
}

// NewTailBuffer returns a TailBuffer holding the last limit bytes.
// A non-positive limit yields a buffer that discards everything.
func NewTailBuffer(limit int) *TailBuffer {
	if limit <= 0 {
		return &TailBuffer{}
	}
	b, err := circbuf.NewBuffer(int64(limit))
	if err != nil {
		// Should never happen for limit > 0, but degrade gracefully.
		return &TailBuffer{}
	}
	return &TailBuffer{buf: b}
}

func (b *TailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if b.buf == nil || n == 0 {
		return n, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *TailBuffer) String() string {
	if b.buf == nil {
		return ""
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset discards the retained bytes.
func (b *TailBuffer) Reset() {
	if b.buf == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}
