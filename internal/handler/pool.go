package handler

import (
	"bytes"
	"sync"
)

// responseBufferSize fits a typical market view with prices; larger
// responses grow the buffer, which the pool then keeps warm.
const responseBufferSize = 1024

// bufferPool reduces allocations during JSON response encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
