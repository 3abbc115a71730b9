package gql

import (
	"bytes"
	"sync"
)

// bufferTier pools response buffers of one starting capacity.
type bufferTier struct {
	pool     sync.Pool
	capacity int
}

// maxPooledBuffer keeps a single huge response from pinning memory in the pool.
const maxPooledBuffer = 1 << 20

var bufferTiers = []*bufferTier{
	newBufferTier(1024),
	newBufferTier(4096),
	newBufferTier(16384),
}

func newBufferTier(capacity int) *bufferTier {
	t := &bufferTier{capacity: capacity}
	t.pool.New = func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, capacity))
	}
	return t
}

// tierFor picks the smallest tier holding size bytes. Unknown sizes
// (negative Content-Length) get the middle tier.
func tierFor(size int64) *bufferTier {
	if size < 0 {
		return bufferTiers[1]
	}
	for _, t := range bufferTiers {
		if size <= int64(t.capacity) {
			return t
		}
	}
	return bufferTiers[len(bufferTiers)-1]
}

func getBuffer(estimatedSize int64) *bytes.Buffer {
	return tierFor(estimatedSize).pool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	tierFor(int64(buf.Cap())).pool.Put(buf)
}
