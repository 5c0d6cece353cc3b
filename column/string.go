package column

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/format"
	"github.com/arloliu/bytecol/internal/options"
	"github.com/arloliu/bytecol/wire"
)

// String is a column of variable-length byte strings.
//
// Row bytes live in an arena of blocks. A row is copied into the active (last)
// block when it fits; otherwise a new block of max(blockSize, len(row)) bytes
// becomes active. A row therefore never spans two blocks, and an oversized row
// gets a block of its own. Earlier blocks are never moved or rewritten, so row
// views stay valid until Clear, Swap or LoadBody.
type String struct {
	items     []itemView
	blocks    []*arenaBlock
	blockSize int
}

var _ Column = (*String)(nil)

// StringOption configures a String column.
type StringOption = options.Option[*String]

// WithBlockSize sets the capacity of newly allocated arena blocks.
// Values <= 0 select DefaultBlockSize.
func WithBlockSize(n int) StringOption {
	return options.NoError(func(c *String) {
		if n <= 0 {
			n = DefaultBlockSize
		}
		c.blockSize = n
	})
}

// NewString creates an empty String column.
func NewString(opts ...StringOption) *String {
	c := &String{blockSize: DefaultBlockSize}
	_ = options.Apply(c, opts...) // String options cannot fail

	return c
}

// NewStringFromSlice creates a String column holding a copy of values.
func NewStringFromSlice(values []string, opts ...StringOption) *String {
	c := NewString(opts...)
	if len(values) == 0 {
		return c
	}

	total := 0
	for _, v := range values {
		total += len(v)
	}

	c.items = make([]itemView, 0, len(values))
	c.ensureRoom(total)
	for _, v := range values {
		c.AppendUnsafe([]byte(v))
	}

	return c
}

// NewStringFromBytes creates a String column holding a copy of values.
func NewStringFromBytes(values [][]byte, opts ...StringOption) *String {
	c := NewString(opts...)
	if len(values) == 0 {
		return c
	}

	total := 0
	for _, v := range values {
		total += len(v)
	}

	c.items = make([]itemView, 0, len(values))
	c.ensureRoom(total)
	for _, v := range values {
		c.AppendUnsafe(v)
	}

	return c
}

// ItemRange locates one row inside a pre-built payload.
type ItemRange struct {
	Offset int
	Length int
}

// NewStringFromPayload creates a String column that takes ownership of payload
// without copying it. Each range in items becomes one row, in order.
//
// The ranges must tile payload exactly: each lies inside it, no two overlap and
// together they cover every byte. Rows may be listed in any order. Otherwise an
// error wrapping errs.ErrInvalidItemView is returned. The caller must not
// modify payload afterwards.
func NewStringFromPayload(payload []byte, items []ItemRange, opts ...StringOption) (*String, error) {
	total := 0
	for i, r := range items {
		if r.Offset < 0 || r.Length < 0 || r.Offset > len(payload)-r.Length {
			return nil, fmt.Errorf("%w: item %d [%d, +%d) outside payload of %d bytes",
				errs.ErrInvalidItemView, i, r.Offset, r.Length, len(payload))
		}
		total += r.Length
	}
	if total != len(payload) {
		return nil, fmt.Errorf("%w: items cover %d bytes, payload has %d",
			errs.ErrInvalidItemView, total, len(payload))
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(items[a].Offset, items[b].Offset)
	})
	end := 0
	for _, i := range order {
		if items[i].Offset < end {
			return nil, fmt.Errorf("%w: item %d at offset %d overlaps bytes before %d",
				errs.ErrInvalidItemView, i, items[i].Offset, end)
		}
		end = items[i].Offset + items[i].Length
	}

	c := NewString(opts...)
	c.blocks = append(c.blocks, adoptArenaBlock(payload))
	c.items = make([]itemView, len(items))
	for i, r := range items {
		c.items[i] = itemView{block: 0, offset: r.Offset, length: r.Length}
	}

	return c, nil
}

// BlockSize returns the capacity used for new arena blocks.
func (c *String) BlockSize() int {
	return c.blockSize
}

// Type returns format.String().
func (c *String) Type() format.Type {
	return format.String()
}

// Len returns the number of rows.
func (c *String) Len() int {
	return len(c.items)
}

// Reserve grows the row index so that rows more rows can be appended without reallocating it.
func (c *String) Reserve(rows int) {
	if rows <= 0 || cap(c.items)-len(c.items) >= rows {
		return
	}

	items := make([]itemView, len(c.items), len(c.items)+rows)
	copy(items, c.items)
	c.items = items
}

// Append copies value into the arena as a new row.
func (c *String) Append(value []byte) {
	c.ensureRoom(len(value))
	c.AppendUnsafe(value)
}

// AppendString copies value into the arena as a new row.
func (c *String) AppendString(value string) {
	c.ensureRoom(len(value))
	c.appendActive(value)
}

// AppendUnsafe copies value into the active block without checking its capacity.
//
// The caller guarantees that a block exists and has at least len(value) bytes
// remaining, as bulk paths do after sizing a block up front. Violating the
// precondition panics.
func (c *String) AppendUnsafe(value []byte) {
	last := len(c.blocks) - 1
	off := c.blocks[last].appendUnsafe(value)
	c.items = append(c.items, itemView{block: last, offset: off, length: len(value)})
}

func (c *String) appendActive(value string) {
	last := len(c.blocks) - 1
	off := c.blocks[last].appendStringUnsafe(value)
	c.items = append(c.items, itemView{block: last, offset: off, length: len(value)})
}

// ensureRoom makes the active block able to hold n more bytes.
func (c *String) ensureRoom(n int) {
	if len(c.blocks) == 0 || c.blocks[len(c.blocks)-1].remaining() < n {
		c.blocks = append(c.blocks, newArenaBlock(max(c.blockSize, n)))
	}
}

// At returns the bytes of row i, or an error wrapping errs.ErrIndexOutOfRange.
func (c *String) At(i int) ([]byte, error) {
	if i < 0 || i >= len(c.items) {
		return nil, indexOutOfRange(i, len(c.items))
	}

	return c.Get(i), nil
}

// Get returns the bytes of row i without a range check beyond Go's own.
// i must be in [0, Len()).
func (c *String) Get(i int) []byte {
	it := c.items[i]
	return c.blocks[it.block].view(it.offset, it.length)
}

// Item returns a typed view of row i.
func (c *String) Item(i int) (ItemView, error) {
	data, err := c.At(i)
	if err != nil {
		return ItemView{}, err
	}

	return ItemView{Type: c.Type(), Data: data}, nil
}

// All returns an iterator over the rows in order.
func (c *String) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i := range c.items {
			if !yield(i, c.Get(i)) {
				return
			}
		}
	}
}

// ByteSize returns the total number of row bytes.
func (c *String) ByteSize() int {
	total := 0
	for _, it := range c.items {
		total += it.length
	}

	return total
}

// BlockCount returns the number of arena blocks.
func (c *String) BlockCount() int {
	return len(c.blocks)
}

// ArenaStats reports how the arena is used.
func (c *String) ArenaStats() ArenaStats {
	stats := ArenaStats{Blocks: len(c.blocks)}
	for _, b := range c.blocks {
		stats.Used += b.used
		stats.Capacity += b.capacity()
	}
	if stats.Capacity > 0 {
		stats.Utilization = float64(stats.Used) / float64(stats.Capacity)
	}

	return stats
}

// AppendColumn appends a copy of every row of other, which must be a *String.
//
// All rows are copied into a single block: the active block when it has room
// for the combined size, otherwise a new block of max(blockSize, size).
func (c *String) AppendColumn(other Column) error {
	src, ok := other.(*String)
	if !ok || src == nil {
		return kindMismatch("append", c, other)
	}

	n := src.Len()
	if n == 0 {
		return nil
	}

	c.ensureRoom(src.ByteSize())
	c.Reserve(n)
	for i := 0; i < n; i++ {
		c.AppendUnsafe(src.Get(i))
	}

	return nil
}

// Clear drops all rows and releases every arena block.
func (c *String) Clear() {
	c.items = nil
	c.blocks = nil
}

// Slice returns a new *String with a copy of rows [begin, begin+n), packed
// into one block sized to exactly their total length.
func (c *String) Slice(begin, n int) Column {
	result := NewString(WithBlockSize(c.blockSize))

	begin, n, ok := sliceBounds(begin, n, len(c.items))
	if !ok {
		return result
	}

	total := 0
	for _, it := range c.items[begin : begin+n] {
		total += it.length
	}

	result.blocks = append(result.blocks, newArenaBlock(total))
	result.items = make([]itemView, 0, n)
	for i := begin; i < begin+n; i++ {
		result.AppendUnsafe(c.Get(i))
	}

	return result
}

// CloneEmpty returns a new, empty *String with the same block size.
func (c *String) CloneEmpty() Column {
	return NewString(WithBlockSize(c.blockSize))
}

// Swap exchanges rows and arena blocks with other, which must be a *String.
func (c *String) Swap(other Column) error {
	o, ok := other.(*String)
	if !ok || o == nil {
		return kindMismatch("swap", c, other)
	}

	c.items, o.items = o.items, c.items
	c.blocks, o.blocks = o.blocks, c.blocks

	return nil
}

// LoadBody replaces the column contents with rows length-prefixed encoded in in.
//
// Row bytes are read straight into the active arena block. A truncated stream
// returns an error wrapping errs.ErrUnexpectedEOF and leaves the column
// partially loaded. When in implements wire.Sized, row counts and lengths the
// remaining input cannot hold are rejected before anything is allocated.
func (c *String) LoadBody(in wire.Input, rows int) error {
	c.Clear()
	// Each row costs at least its one byte length prefix.
	if err := checkBodySize(in, rows, 1); err != nil {
		return err
	}

	c.items = make([]itemView, 0, reserveRows(in, rows, 1))

	var active *arenaBlock
	for i := 0; i < rows; i++ {
		n64, err := in.ReadUInt64()
		if err != nil {
			return fmt.Errorf("failed to read length of row %d: %w", i, err)
		}
		if n64 > wire.MaxStringLength {
			return fmt.Errorf("%w: row %d length %d exceeds maximum %d",
				errs.ErrValidation, i, n64, wire.MaxStringLength)
		}

		n := int(n64)
		if err := checkRemaining(in, int64(n)); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if active == nil || n > active.remaining() {
			active = newArenaBlock(max(c.blockSize, n))
			c.blocks = append(c.blocks, active)
		}

		if err := in.ReadBytes(active.writePosition()[:n]); err != nil {
			return fmt.Errorf("failed to read row %d: %w", i, err)
		}

		off := active.consumeTail(n)
		c.items = append(c.items, itemView{block: len(c.blocks) - 1, offset: off, length: n})
	}

	return nil
}

// SaveBody writes every row as a uvarint length followed by its bytes.
func (c *String) SaveBody(out wire.Output) error {
	for i := range c.items {
		row := c.Get(i)
		if err := out.WriteUInt64(uint64(len(row))); err != nil {
			return err
		}
		if err := out.WriteBytes(row); err != nil {
			return err
		}
	}

	return nil
}
