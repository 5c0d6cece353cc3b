package column

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/arloliu/bytecol/endian"
	"github.com/arloliu/bytecol/format"
	"github.com/arloliu/bytecol/wire"
)

// UInt64 is a column of unsigned 64-bit integers, stored little-endian on the wire.
type UInt64 struct {
	data []uint64
}

var _ Column = (*UInt64)(nil)

// NewUInt64 creates an empty UInt64 column.
func NewUInt64() *UInt64 {
	return &UInt64{}
}

// NewUInt64FromSlice creates a UInt64 column holding a copy of values.
func NewUInt64FromSlice(values []uint64) *UInt64 {
	return &UInt64{data: append([]uint64(nil), values...)}
}

// Type returns format.UInt64().
func (c *UInt64) Type() format.Type {
	return format.UInt64()
}

// Len returns the number of rows.
func (c *UInt64) Len() int {
	return len(c.data)
}

// Append adds v as a new row.
func (c *UInt64) Append(v uint64) {
	c.data = append(c.data, v)
}

// At returns row i, or an error wrapping errs.ErrIndexOutOfRange.
func (c *UInt64) At(i int) (uint64, error) {
	if i < 0 || i >= len(c.data) {
		return 0, indexOutOfRange(i, len(c.data))
	}

	return c.data[i], nil
}

// Get returns row i. i must be in [0, Len()).
func (c *UInt64) Get(i int) uint64 {
	return c.data[i]
}

// Values returns the column contents. The slice aliases column storage.
func (c *UInt64) Values() []uint64 {
	return c.data
}

// Item returns row i encoded as 8 little-endian bytes.
func (c *UInt64) Item(i int) (ItemView, error) {
	v, err := c.At(i)
	if err != nil {
		return ItemView{}, err
	}

	return ItemView{Type: c.Type(), Data: endian.WireEngine().AppendUint64(nil, v)}, nil
}

// AppendColumn appends a copy of other's rows. other must be a *UInt64.
func (c *UInt64) AppendColumn(other Column) error {
	src, ok := other.(*UInt64)
	if !ok || src == nil {
		return kindMismatch("append", c, other)
	}
	c.data = append(c.data, src.data...)

	return nil
}

// Clear removes all rows and releases storage.
func (c *UInt64) Clear() {
	c.data = nil
}

// Slice returns a new *UInt64 with a copy of rows [begin, begin+n).
func (c *UInt64) Slice(begin, n int) Column {
	begin, n, ok := sliceBounds(begin, n, len(c.data))
	if !ok {
		return NewUInt64()
	}

	return NewUInt64FromSlice(c.data[begin : begin+n])
}

// CloneEmpty returns a new, empty *UInt64.
func (c *UInt64) CloneEmpty() Column {
	return NewUInt64()
}

// Swap exchanges rows with other, which must be a *UInt64.
func (c *UInt64) Swap(other Column) error {
	o, ok := other.(*UInt64)
	if !ok || o == nil {
		return kindMismatch("swap", c, other)
	}
	c.data, o.data = o.data, c.data

	return nil
}

// LoadBody reads rows little-endian values. On little-endian hosts the values
// are read straight into column memory.
//
// A row count larger than a wire.Sized input is rejected with
// errs.ErrUnexpectedEOF before any allocation. Inputs of unknown size are read
// in bounded chunks.
func (c *UInt64) LoadBody(in wire.Input, rows int) error {
	if err := checkBodySize(in, rows, 8); err != nil {
		return err
	}

	c.data = slices.Grow(c.data[:0], reserveRows(in, rows, 8))
	for len(c.data) < rows {
		start := len(c.data)
		end := start + min(rows-start, loadChunkSize/8)
		c.data = slices.Grow(c.data, end-start)[:end]
		if err := c.readValues(in, start); err != nil {
			c.data = c.data[:start]
			return err
		}
	}

	return nil
}

// readValues fills c.data[start:] from in.
func (c *UInt64) readValues(in wire.Input, start int) error {
	if endian.IsNativeWireOrder() {
		if err := in.ReadBytes(uint64Bytes(c.data[start:])); err != nil {
			return fmt.Errorf("failed to read rows %d to %d of UInt64: %w", start, len(c.data), err)
		}

		return nil
	}

	for i := start; i < len(c.data); i++ {
		v, err := in.ReadFixed64()
		if err != nil {
			return fmt.Errorf("failed to read row %d of UInt64: %w", i, err)
		}
		c.data[i] = v
	}

	return nil
}

// SaveBody writes every value as 8 little-endian bytes.
func (c *UInt64) SaveBody(out wire.Output) error {
	if endian.IsNativeWireOrder() {
		return out.WriteBytes(uint64Bytes(c.data))
	}

	for _, v := range c.data {
		if err := out.WriteFixed64(v); err != nil {
			return err
		}
	}

	return nil
}

// uint64Bytes reinterprets values as raw memory.
func uint64Bytes(values []uint64) []byte {
	if len(values) == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), len(values)*8)
}
