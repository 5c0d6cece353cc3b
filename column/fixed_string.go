package column

import (
	"fmt"
	"iter"

	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/format"
	"github.com/arloliu/bytecol/internal/pool"
	"github.com/arloliu/bytecol/wire"
)

// FixedString is a column of byte strings of exactly width bytes each.
//
// Rows are stored back to back in one buffer; row i occupies
// [i*width, (i+1)*width). Values shorter than width are right-padded with zero
// bytes, and the padding is returned as part of the row.
type FixedString struct {
	width int
	data  *pool.ByteBuffer
}

var _ Column = (*FixedString)(nil)

// NewFixedString creates an empty column of the given width.
// A width of zero or less returns an error wrapping errs.ErrInvalidWidth.
func NewFixedString(width int) (*FixedString, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidWidth, width)
	}

	return &FixedString{width: width, data: pool.NewByteBuffer(0)}, nil
}

// MustNewFixedString is like NewFixedString but panics on an invalid width.
func MustNewFixedString(width int) *FixedString {
	c, err := NewFixedString(width)
	if err != nil {
		panic(err)
	}

	return c
}

// Width returns the number of bytes per row.
func (c *FixedString) Width() int {
	return c.width
}

// Type returns format.FixedString(width).
func (c *FixedString) Type() format.Type {
	return format.FixedString(c.width)
}

// Len returns the number of rows.
func (c *FixedString) Len() int {
	return c.data.Len() / c.width
}

// Append adds value as a new row, zero-padded to the column width.
//
// A value longer than the width is rejected with an error wrapping
// errs.ErrValidation and the column is left unchanged.
func (c *FixedString) Append(value []byte) error {
	if len(value) > c.width {
		return c.tooLong(len(value))
	}

	c.data.GrowBlocks(c.width, DefaultBlockSize)
	c.data.MustWrite(value)
	c.data.AppendZeros(c.width - len(value))

	return nil
}

// AppendString adds value as a new row, zero-padded to the column width.
func (c *FixedString) AppendString(value string) error {
	if len(value) > c.width {
		return c.tooLong(len(value))
	}

	c.data.GrowBlocks(c.width, DefaultBlockSize)
	c.data.MustWriteString(value)
	c.data.AppendZeros(c.width - len(value))

	return nil
}

func (c *FixedString) tooLong(n int) error {
	return fmt.Errorf("%w: expected string of length not greater than %d bytes, received %d bytes",
		errs.ErrValidation, c.width, n)
}

// At returns the width bytes of row i, or an error wrapping errs.ErrIndexOutOfRange.
func (c *FixedString) At(i int) ([]byte, error) {
	if i < 0 || i >= c.Len() {
		return nil, indexOutOfRange(i, c.Len())
	}

	return c.Get(i), nil
}

// Get returns the width bytes of row i. i must be in [0, Len()).
func (c *FixedString) Get(i int) []byte {
	pos := i * c.width
	return c.data.B[pos : pos+c.width : pos+c.width]
}

// Item returns a typed view of row i.
func (c *FixedString) Item(i int) (ItemView, error) {
	data, err := c.At(i)
	if err != nil {
		return ItemView{}, err
	}

	return ItemView{Type: c.Type(), Data: data}, nil
}

// All returns an iterator over the rows in order.
func (c *FixedString) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		n := c.Len()
		for i := 0; i < n; i++ {
			if !yield(i, c.Get(i)) {
				return
			}
		}
	}
}

// Bytes returns the whole column body: Len()*Width() bytes, padding included.
func (c *FixedString) Bytes() []byte {
	return c.data.Bytes()
}

// AppendColumn appends a copy of other's rows. other must be a *FixedString of
// the same width.
func (c *FixedString) AppendColumn(other Column) error {
	src, ok := other.(*FixedString)
	if !ok || src == nil || src.width != c.width {
		return kindMismatch("append", c, other)
	}

	c.data.MustWrite(src.data.Bytes())

	return nil
}

// Clear removes all rows.
func (c *FixedString) Clear() {
	c.data.Reset()
}

// Slice returns a new *FixedString of the same width with a copy of rows [begin, begin+n).
func (c *FixedString) Slice(begin, n int) Column {
	result := &FixedString{width: c.width, data: pool.NewByteBuffer(0)}

	begin, n, ok := sliceBounds(begin, n, c.Len())
	if !ok {
		return result
	}

	result.data.MustWrite(c.data.B[begin*c.width : (begin+n)*c.width])

	return result
}

// CloneEmpty returns a new, empty *FixedString of the same width.
func (c *FixedString) CloneEmpty() Column {
	return &FixedString{width: c.width, data: pool.NewByteBuffer(0)}
}

// Swap exchanges width and rows with other, which must be a *FixedString.
func (c *FixedString) Swap(other Column) error {
	o, ok := other.(*FixedString)
	if !ok || o == nil {
		return kindMismatch("swap", c, other)
	}

	c.width, o.width = o.width, c.width
	c.data, o.data = o.data, c.data

	return nil
}

// LoadBody reads rows*width bytes from in as the new column contents.
//
// A row count whose body overflows an int is rejected with errs.ErrValidation,
// and one larger than a wire.Sized input with errs.ErrUnexpectedEOF, before
// any allocation. Inputs of unknown size are read in bounded chunks.
func (c *FixedString) LoadBody(in wire.Input, rows int) error {
	if err := checkBodySize(in, rows, c.width); err != nil {
		return err
	}

	total := rows * c.width
	c.data.Reset()
	c.data.Grow(reserveRows(in, rows, c.width) * c.width)
	for c.data.Len() < total {
		start := c.data.Len()
		c.data.Resize(start + min(total-start, loadChunkSize))
		if err := in.ReadBytes(c.data.B[start:]); err != nil {
			c.data.Resize(start)
			return fmt.Errorf("failed to read %d rows of %s: %w", rows, c.Type().Name(), err)
		}
	}

	return nil
}

// SaveBody writes the column body in one piece.
func (c *FixedString) SaveBody(out wire.Output) error {
	return out.WriteBytes(c.data.Bytes())
}
