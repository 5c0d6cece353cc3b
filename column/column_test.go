package column

import (
	"bytes"
	"math"
	"testing"

	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/format"
	"github.com/arloliu/bytecol/wire"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		typ      format.Type
		expected string
	}{
		{"string", format.String(), "String"},
		{"fixed", format.FixedString(8), "FixedString(8)"},
		{"uint64", format.UInt64(), "UInt64"},
		{"array", format.Array(format.FixedString(2)), "Array(FixedString(2))"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.typ)
			require.NoError(t, err)
			require.Equal(t, 0, c.Len())
			require.Equal(t, tc.expected, c.Type().Name())
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(format.FixedString(0))
	require.ErrorIs(t, err, errs.ErrInvalidWidth)

	_, err = New(format.Type{})
	require.ErrorIs(t, err, errs.ErrUnknownType)
}

func TestNewByName(t *testing.T) {
	c, err := NewByName(" FixedString( 4 ) ")
	require.NoError(t, err)
	require.Equal(t, 4, c.(*FixedString).Width())

	_, err = NewByName("Decimal(10)")
	require.ErrorIs(t, err, errs.ErrUnknownType)

	_, err = NewByName("FixedString(0)")
	require.ErrorIs(t, err, errs.ErrInvalidWidth)
}

func TestColumn_KindMismatchLeavesColumnsUnchanged(t *testing.T) {
	columns := []Column{
		NewStringFromSlice([]string{"a"}),
		func() Column {
			c := MustNewFixedString(1)
			_ = c.AppendString("b")
			return c
		}(),
		NewUInt64FromSlice([]uint64{1}),
		NewArray(NewString()),
	}

	for i, dst := range columns {
		for j, src := range columns {
			if i == j {
				continue
			}

			before := dst.Len()
			require.ErrorIs(t, dst.AppendColumn(src), errs.ErrKindMismatch, "%s <- %s", dst.Type(), src.Type())
			require.ErrorIs(t, dst.Swap(src), errs.ErrKindMismatch)
			require.Equal(t, before, dst.Len())
		}
	}
}

func TestColumn_SliceCloneEmptyKeepType(t *testing.T) {
	columns := []Column{
		NewStringFromSlice([]string{"a", "b"}),
		MustNewFixedString(3),
		NewUInt64FromSlice([]uint64{1, 2}),
		NewArray(MustNewFixedString(2)),
	}

	for _, c := range columns {
		require.True(t, c.Slice(0, 1).Type().Equal(c.Type()))
		require.True(t, c.CloneEmpty().Type().Equal(c.Type()))
		require.Equal(t, 0, c.CloneEmpty().Len())
	}
}

func TestItemView_String(t *testing.T) {
	v := ItemView{Type: format.String(), Data: []byte("view")}
	require.Equal(t, "view", v.String())
}

func TestSliceBounds(t *testing.T) {
	testCases := []struct {
		begin, n, size int
		wantBegin      int
		wantN          int
		wantOK         bool
	}{
		{0, 3, 5, 0, 3, true},
		{3, 10, 5, 3, 2, true},
		{5, 1, 5, 0, 0, false},
		{-1, 2, 5, 0, 0, false},
		{1, 0, 5, 0, 0, false},
		{1, -2, 5, 0, 0, false},
		{0, 1, 0, 0, 0, false},
	}

	for _, tc := range testCases {
		b, n, ok := sliceBounds(tc.begin, tc.n, tc.size)
		require.Equal(t, tc.wantOK, ok)
		require.Equal(t, tc.wantBegin, b)
		require.Equal(t, tc.wantN, n)
	}
}

func TestCheckBodySize(t *testing.T) {
	sized := wire.NewBytesReader(make([]byte, 16))
	stream := wire.NewReader(bytes.NewReader(nil))

	testCases := []struct {
		name   string
		in     wire.Input
		rows   int
		perRow int
		err    error
	}{
		{"fits", sized, 2, 8, nil},
		{"beyond input", sized, 3, 8, errs.ErrUnexpectedEOF},
		{"negative rows", sized, -1, 8, errs.ErrValidation},
		{"overflow", sized, math.MaxInt/8 + 1, 8, errs.ErrValidation},
		{"unknown size", stream, 1 << 40, 8, nil},
		{"zero width rows", sized, 1 << 40, 0, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkBodySize(tc.in, tc.rows, tc.perRow)
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestReserveRows(t *testing.T) {
	require.Equal(t, 1<<40, reserveRows(wire.NewBytesReader(nil), 1<<40, 8))
	require.Equal(t, loadChunkSize/8, reserveRows(wire.NewReader(bytes.NewReader(nil)), 1<<40, 8))
	require.Equal(t, 10, reserveRows(wire.NewReader(bytes.NewReader(nil)), 10, 8))
	require.Equal(t, loadChunkSize, reserveRows(wire.NewReader(bytes.NewReader(nil)), 1<<40, 0))
}
