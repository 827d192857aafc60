// Package bufpool is a freelist for the output buffers
// used while encoding batches of rows.
package bufpool

import (
	"bytes"
	"sync"
)

var pool = &sync.Pool{New: func() interface{} { return bytes.NewBuffer(nil) }}

// Get returns an empty bytes.Buffer
// with room for at least size bytes.
// It is like new(bytes.Buffer) except it uses the free list.
// The caller should call Put when finished with the returned object.
// Since Buffer.Bytes() returns the buffer's underlying slice,
// it is not safe for that slice to escape the caller.
func Get(size int) *bytes.Buffer {
	b := pool.Get().(*bytes.Buffer)
	b.Grow(size)
	return b
}

// Put resets the buffer and adds it to the freelist.
func Put(b *bytes.Buffer) {
	b.Reset()
	pool.Put(b)
}
