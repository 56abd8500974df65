package codec

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses the scratch buffers the top-from-nested bridge encodes
// into before handing the result to a TopOutput in one call.
var bytesBufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}

// maxPooledBuffer keeps one oversized value from pinning a large buffer.
const maxPooledBuffer = 64 * 1024

func getBuffer() *bytes.Buffer {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	bytesBufPool.Put(buf)
}
