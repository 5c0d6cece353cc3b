package column

import "fmt"

// arenaBlock is one segment of a String column's arena: a fixed-capacity
// buffer filled from the front.
//
// The buffer is allocated once and never reallocated, so views into [0, used)
// stay valid for the block's lifetime. Blocks are held by pointer, which keeps
// them in place when the column's block list grows.
type arenaBlock struct {
	buf  []byte
	used int
}

func newArenaBlock(capacity int) *arenaBlock {
	return &arenaBlock{buf: make([]byte, capacity)}
}

// adoptArenaBlock takes ownership of payload as a completely used block.
func adoptArenaBlock(payload []byte) *arenaBlock {
	return &arenaBlock{buf: payload, used: len(payload)}
}

func (b *arenaBlock) capacity() int {
	return len(b.buf)
}

func (b *arenaBlock) remaining() int {
	return len(b.buf) - b.used
}

// appendUnsafe copies p to the block tail and returns its offset.
// The caller guarantees len(p) <= remaining().
func (b *arenaBlock) appendUnsafe(p []byte) int {
	off := b.reserve(len(p))
	copy(b.buf[off:], p)

	return off
}

// appendStringUnsafe is appendUnsafe for a string, without converting it to []byte.
func (b *arenaBlock) appendStringUnsafe(s string) int {
	off := b.reserve(len(s))
	copy(b.buf[off:], s)

	return off
}

// reserve marks the next n bytes as used and returns their offset. It panics
// when fewer than n bytes remain.
func (b *arenaBlock) reserve(n int) int {
	if n > b.remaining() {
		panic(fmt.Sprintf("column: arena block overflow: %d bytes into %d remaining", n, b.remaining()))
	}

	off := b.used
	b.used += n

	return off
}

// writePosition returns the unused tail for direct writes by a decoder.
// Bytes written there become part of the block only after consumeTail.
func (b *arenaBlock) writePosition() []byte {
	return b.buf[b.used:]
}

// consumeTail marks n bytes written through writePosition as used and returns their offset.
func (b *arenaBlock) consumeTail(n int) int {
	return b.reserve(n)
}

// view returns the bytes [off, off+n). The capacity is clipped so appending to
// the result can never write into the arena.
func (b *arenaBlock) view(off, n int) []byte {
	return b.buf[off : off+n : off+n]
}

// itemView addresses one String row inside one arena block.
type itemView struct {
	block  int
	offset int
	length int
}

// ArenaStats is a snapshot of a String column's arena usage.
type ArenaStats struct {
	Blocks      int     // number of arena blocks
	Used        int     // bytes occupied by rows
	Capacity    int     // bytes allocated across all blocks
	Utilization float64 // Used / Capacity, 0 when nothing is allocated
}
