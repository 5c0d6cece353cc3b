package pool

import (
	"io"
	"sync"
)

const (
	WriterBufferDefaultSize  = 1024 * 16       // 16KiB
	WriterBufferMaxThreshold = 1024 * 128      // 128KiB
	BlockBufferDefaultSize   = 1024 * 1024     // 1MiB
	BlockBufferMaxThreshold  = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is a growable byte slice.
//
// It is used both as the owned storage of fixed-width columns and as the
// staging buffer of the wire writer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteString appends s to the buffer without an intermediate []byte conversion.
func (bb *ByteBuffer) MustWriteString(s string) {
	bb.B = append(bb.B, s...)
}

// AppendZeros appends n zero bytes to the buffer.
func (bb *ByteBuffer) AppendZeros(n int) {
	if n <= 0 {
		return
	}
	bb.ExtendOrGrow(n)
	clear(bb.B[len(bb.B)-n:])
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
// The new bytes keep whatever the backing array held before.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Resize sets the length of the buffer to exactly n bytes, growing the
// capacity if needed. Bytes beyond the previous length are zeroed.
func (bb *ByteBuffer) Resize(n int) {
	if n <= len(bb.B) {
		bb.B = bb.B[:n]
		return
	}

	bb.AppendZeros(n - len(bb.B))
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<64KiB), grow by WriterBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := WriterBufferDefaultSize
	if cap(bb.B) > 4*WriterBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	bb.realloc(len(bb.B) + growBy)
}

// GrowBlocks ensures the buffer can hold requiredBytes more bytes, rounding
// the new capacity up to the next multiple of blockSize.
//
// Rounding keeps repeated small appends amortized: the buffer is reallocated
// at most once per blockSize bytes written.
func (bb *ByteBuffer) GrowBlocks(requiredBytes, blockSize int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}
	if blockSize <= 0 {
		bb.Grow(requiredBytes)
		return
	}

	need := len(bb.B) + requiredBytes
	bb.realloc((need/blockSize + 1) * blockSize)
}

func (bb *ByteBuffer) realloc(capacity int) {
	newBuf := make([]byte, len(bb.B), capacity)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put instead
// of being retained by the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	writerDefaultPool = NewByteBufferPool(WriterBufferDefaultSize, WriterBufferMaxThreshold)
	blockDefaultPool  = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)
)

// GetWriterBuffer retrieves a ByteBuffer for staging wire output.
func GetWriterBuffer() *ByteBuffer {
	return writerDefaultPool.Get()
}

// PutWriterBuffer returns a wire output staging buffer to its pool.
func PutWriterBuffer(bb *ByteBuffer) {
	writerDefaultPool.Put(bb)
}

// GetBlockBuffer retrieves a ByteBuffer large enough to hold a serialized block.
func GetBlockBuffer() *ByteBuffer {
	return blockDefaultPool.Get()
}

// PutBlockBuffer returns a serialized block buffer to its pool.
func PutBlockBuffer(bb *ByteBuffer) {
	blockDefaultPool.Put(bb)
}
