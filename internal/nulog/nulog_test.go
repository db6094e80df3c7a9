package nulog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestTailBufferKeepsLastBytes(t *testing.T) {
	tail := NewTailBuffer(8)
	_, err := tail.Write([]byte("0123456789abcdef"))
	assert.NoError(t, err)
	assert.Equal(t, "89abcdef", tail.String())

	tail.Reset()
	assert.Empty(t, tail.String())
}

func TestTailBufferZeroLimitDiscards(t *testing.T) {
	tail := NewTailBuffer(0)
	n, err := tail.Write([]byte("dropped"))
	assert.NoError(t, err)
	assert.Equal(t, len("dropped"), n)
	assert.Empty(t, tail.String())
}

func TestWithTailMirrorsLogOutput(t *testing.T) {
	var out bytes.Buffer
	log := New(&out, logrus.InfoLevel)
	tail := WithTail(log, DefaultTailLimit)

	log.Info("first line")
	log.Info("second line")

	assert.Contains(t, out.String(), "first line")
	assert.Contains(t, tail.String(), "first line")
	assert.Contains(t, tail.String(), "second line")
}

func TestWithTailBoundsRetention(t *testing.T) {
	var out bytes.Buffer
	log := New(&out, logrus.InfoLevel)
	tail := WithTail(log, 64)

	for i := 0; i < 50; i++ {
		log.Info(strings.Repeat("x", 20))
	}
	assert.LessOrEqual(t, len(tail.String()), 64)
	assert.Greater(t, len(out.String()), 64, "the log itself is unbounded")
}
