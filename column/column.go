package column

import (
	"fmt"
	"math"

	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/format"
	"github.com/arloliu/bytecol/wire"
)

// DefaultBlockSize is the allocation unit of column storage: the capacity of a
// String arena block, and the step a FixedString buffer grows by.
const DefaultBlockSize = 4096

// loadChunkSize bounds how much a decoder allocates ahead of the bytes it has
// actually read from an input of unknown length.
const loadChunkSize = 1 << 20

// Column is the capability shared by all column kinds.
type Column interface {
	// Type returns the column's type tag.
	Type() format.Type

	// Len returns the number of rows.
	Len() int

	// AppendColumn appends a deep copy of every row of other. other must be the
	// same kind, otherwise an error wrapping errs.ErrKindMismatch is returned and
	// the column is unchanged.
	AppendColumn(other Column) error

	// Slice returns a new column holding a deep copy of rows [begin, begin+n).
	// n is clamped to the available rows; begin at or past Len yields an empty column.
	Slice(begin, n int) Column

	// CloneEmpty returns a new, empty column of the same type.
	CloneEmpty() Column

	// Swap exchanges the contents of two columns of the same kind without copying.
	Swap(other Column) error

	// Item returns a typed view of row i, or an error wrapping errs.ErrIndexOutOfRange.
	Item(i int) (ItemView, error)

	// Clear removes all rows and releases storage.
	Clear()

	// LoadBody replaces the column contents with rows decoded from in.
	LoadBody(in wire.Input, rows int) error

	// SaveBody writes the column body to out.
	SaveBody(out wire.Output) error
}

// ItemView is a typed, read-only view of a single row.
type ItemView struct {
	Type format.Type
	Data []byte
}

// String returns the row bytes as a string.
func (v ItemView) String() string {
	return string(v.Data)
}

// New returns an empty column for the given type tag.
func New(t format.Type) (Column, error) {
	switch t.Code() {
	case format.CodeString:
		return NewString(), nil
	case format.CodeFixedString:
		return NewFixedString(t.Width())
	case format.CodeUInt64:
		return NewUInt64(), nil
	case format.CodeArray:
		item, ok := t.Item()
		if !ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrUnknownType, t.Name())
		}
		data, err := New(item)
		if err != nil {
			return nil, err
		}

		return NewArray(data), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownType, t.Name())
	}
}

// NewByName parses a type name such as "FixedString(8)" and returns an empty column of that type.
func NewByName(name string) (Column, error) {
	t, err := format.ParseType(name)
	if err != nil {
		return nil, err
	}

	return New(t)
}

func kindMismatch(op string, dst Column, src Column) error {
	if src == nil {
		return fmt.Errorf("%w: cannot %s nil column with %s", errs.ErrKindMismatch, op, dst.Type().Name())
	}

	return fmt.Errorf("%w: cannot %s %s with %s", errs.ErrKindMismatch, op, src.Type().Name(), dst.Type().Name())
}

func indexOutOfRange(i, n int) error {
	return fmt.Errorf("%w: index %d, length %d", errs.ErrIndexOutOfRange, i, n)
}

func negativeRows(rows int) error {
	return fmt.Errorf("%w: negative row count %d", errs.ErrValidation, rows)
}

// checkBodySize validates a body of rows rows costing at least perRow bytes
// each. The size must fit in an int, and when in knows how many bytes are
// left the body must fit in them.
func checkBodySize(in wire.Input, rows, perRow int) error {
	if rows < 0 {
		return negativeRows(rows)
	}
	if perRow > 0 && rows > math.MaxInt/perRow {
		return fmt.Errorf("%w: %d rows of %d bytes overflow", errs.ErrValidation, rows, perRow)
	}

	if err := checkRemaining(in, int64(rows*perRow)); err != nil {
		return fmt.Errorf("body of %d rows: %w", rows, err)
	}

	return nil
}

// checkRemaining fails with errs.ErrUnexpectedEOF when in knows it holds fewer
// than need bytes.
func checkRemaining(in wire.Input, need int64) error {
	sized, ok := in.(wire.Sized)
	if !ok {
		return nil
	}
	if left, known := sized.Remaining(); known && need > left {
		return fmt.Errorf("%w: need at least %d bytes, %d left", errs.ErrUnexpectedEOF, need, left)
	}

	return nil
}

// reserveRows returns how many rows to allocate up front for a body of rows
// rows. Without a known input size the reservation is capped, and storage
// grows as rows arrive.
func reserveRows(in wire.Input, rows, perRow int) int {
	if sized, ok := in.(wire.Sized); ok {
		if _, known := sized.Remaining(); known {
			return rows
		}
	}

	return min(rows, loadChunkSize/max(perRow, 1))
}

// sliceBounds clamps [begin, begin+n) to a column of length size. ok is false
// when the resulting range is empty.
func sliceBounds(begin, n, size int) (int, int, bool) {
	if begin < 0 || begin >= size || n <= 0 {
		return 0, 0, false
	}

	return begin, min(n, size-begin), true
}
