package handler

import (
	"bytes"
	"sync"
)

const (
	// initialBufferSize fits typical responses (an account, a listing, a
	// small inventory) without growing.
	initialBufferSize = 512
	// maxPooledBufferSize keeps one-off large responses, like a full market
	// browse, from pinning big buffers in the pool.
	maxPooledBufferSize = 64 * 1024
)

// bufferPool reuses encode buffers across responses
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

// getBuffer retrieves an empty buffer from the pool
func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer returns the buffer to the pool, dropping buffers that grew past
// the pooling cap. Reports whether the buffer was pooled.
func putBuffer(buf *bytes.Buffer) bool {
	if buf.Cap() > maxPooledBufferSize {
		return false
	}
	buf.Reset()
	bufferPool.Put(buf)
	return true
}
