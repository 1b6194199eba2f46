package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool_DropsOversizedBuffers(t *testing.T) {
	buf := getBuffer()
	buf.Grow(maxPooledBufferSize * 2)
	putBuffer(buf)

	small := getBuffer()
	small.WriteString("x")
	putBuffer(small)
	assert.Zero(t, small.Len())
}
