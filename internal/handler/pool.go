package handler

import (
	"bytes"
	"sync"
)

const (
	initialBufferSize = 512

	// larger buffers are dropped instead of pooled
	maxPooledBufferSize = 64 << 10
)

// bufferPool holds encode buffers for JSON responses
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
