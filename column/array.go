package column

import (
	"fmt"
	"math"

	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/format"
	"github.com/arloliu/bytecol/wire"
)

// Array is a column whose rows are arrays of values of a nested column.
//
// The values of all rows are stored consecutively in the nested data column.
// offsets holds the cumulative element count after each row, so row i spans
// data rows [offsets[i-1], offsets[i]).
type Array struct {
	data    Column
	offsets *UInt64
}

var _ Column = (*Array)(nil)

// NewArray creates an empty array column over data. data must be empty; it
// becomes owned by the array.
func NewArray(data Column) *Array {
	return &Array{data: data, offsets: NewUInt64()}
}

// Type returns format.Array of the nested column's type.
func (c *Array) Type() format.Type {
	return format.Array(c.data.Type())
}

// Len returns the number of arrays.
func (c *Array) Len() int {
	return c.offsets.Len()
}

// Data returns the nested column holding the elements of every row.
func (c *Array) Data() Column {
	return c.data
}

// Offsets returns the cumulative element counts.
func (c *Array) Offsets() *UInt64 {
	return c.offsets
}

// AppendAsColumn appends all rows of elems as one new array row.
//
// elems must have the nested column's type; otherwise an error wrapping
// errs.ErrValidation is returned.
func (c *Array) AppendAsColumn(elems Column) error {
	if elems == nil || !c.data.Type().Equal(elems.Type()) {
		name := "nil"
		if elems != nil {
			name = elems.Type().Name()
		}

		return fmt.Errorf("%w: can't append column of type %s to column type %s",
			errs.ErrValidation, name, c.data.Type().Name())
	}

	n := elems.Len()
	if err := c.data.AppendColumn(elems); err != nil {
		return err
	}
	c.offsets.Append(c.offset(c.Len()) + uint64(n))

	return nil
}

// GetAsColumn returns a copy of the elements of row i as a column of the nested type.
func (c *Array) GetAsColumn(i int) (Column, error) {
	if i < 0 || i >= c.Len() {
		return nil, indexOutOfRange(i, c.Len())
	}

	start := c.offset(i)

	return c.data.Slice(int(start), int(c.offsets.Get(i)-start)), nil
}

// offset returns the index of the first element of row i; offset(Len()) is the element count.
func (c *Array) offset(i int) uint64 {
	if i == 0 {
		return 0
	}

	return c.offsets.Get(i - 1)
}

// Item is not supported for arrays; use GetAsColumn.
func (c *Array) Item(i int) (ItemView, error) {
	if i < 0 || i >= c.Len() {
		return ItemView{}, indexOutOfRange(i, c.Len())
	}

	return ItemView{}, fmt.Errorf("%w: item view of %s", errs.ErrUnsupported, c.Type().Name())
}

// AppendColumn appends a copy of other's rows. other must be an *Array with
// the same element type.
func (c *Array) AppendColumn(other Column) error {
	src, ok := other.(*Array)
	if !ok || src == nil || !src.data.Type().Equal(c.data.Type()) {
		return kindMismatch("append", c, other)
	}

	n := src.Len()
	base := c.offset(c.Len())
	if err := c.data.AppendColumn(src.data); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		c.offsets.Append(base + src.offsets.Get(i))
	}

	return nil
}

// Clear removes all rows.
func (c *Array) Clear() {
	c.offsets.Clear()
	c.data.Clear()
}

// Slice returns a new *Array with a copy of rows [begin, begin+n).
func (c *Array) Slice(begin, n int) Column {
	begin, n, ok := sliceBounds(begin, n, c.Len())
	if !ok {
		return c.CloneEmpty()
	}

	first := c.offset(begin)
	last := c.offset(begin + n)
	result := &Array{
		data:    c.data.Slice(int(first), int(last-first)),
		offsets: NewUInt64(),
	}
	for i := begin; i < begin+n; i++ {
		result.offsets.Append(c.offsets.Get(i) - first)
	}

	return result
}

// CloneEmpty returns a new, empty array over an empty clone of the nested column.
func (c *Array) CloneEmpty() Column {
	return NewArray(c.data.CloneEmpty())
}

// Swap exchanges nested data and offsets with other, which must be an *Array.
func (c *Array) Swap(other Column) error {
	o, ok := other.(*Array)
	if !ok || o == nil {
		return kindMismatch("swap", c, other)
	}

	c.data, o.data = o.data, c.data
	c.offsets, o.offsets = o.offsets, c.offsets

	return nil
}

// LoadBody reads the offsets body followed by the nested body.
//
// The nested row count comes from the last offset. The nested column bounds it
// by the remaining input before allocating, so a corrupt offset fails with
// errs.ErrUnexpectedEOF.
func (c *Array) LoadBody(in wire.Input, rows int) error {
	if rows < 0 {
		return negativeRows(rows)
	}
	if rows == 0 {
		c.Clear()
		return nil
	}

	if err := c.offsets.LoadBody(in, rows); err != nil {
		return fmt.Errorf("failed to read array offsets: %w", err)
	}

	var prev uint64
	for i, off := range c.offsets.Values() {
		if off < prev {
			return fmt.Errorf("%w: array offset %d at row %d is below previous offset %d",
				errs.ErrValidation, off, i, prev)
		}
		prev = off
	}
	if prev > maxElements || prev > math.MaxInt {
		return fmt.Errorf("%w: array element count %d exceeds maximum %d", errs.ErrValidation, prev, maxElements)
	}

	if err := c.data.LoadBody(in, int(prev)); err != nil {
		return fmt.Errorf("failed to read array elements: %w", err)
	}

	return nil
}

// SaveBody writes the offsets body followed by the nested body.
func (c *Array) SaveBody(out wire.Output) error {
	if err := c.offsets.SaveBody(out); err != nil {
		return err
	}

	return c.data.SaveBody(out)
}

// maxElements bounds the nested row count accepted from a stream.
const maxElements = 1 << 32
