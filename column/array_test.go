package column

import (
	"encoding/binary"
	"testing"

	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/format"
	"github.com/arloliu/bytecol/wire"
	"github.com/stretchr/testify/require"
)

func newStringArray(t *testing.T, rows ...[]string) *Array {
	t.Helper()

	c := NewArray(NewString())
	for _, row := range rows {
		require.NoError(t, c.AppendAsColumn(NewStringFromSlice(row)))
	}

	return c
}

func arrayRows(t *testing.T, c *Array) [][]string {
	t.Helper()

	rows := make([][]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		elems, err := c.GetAsColumn(i)
		require.NoError(t, err)
		rows = append(rows, stringRows(t, elems.(*String)))
	}

	return rows
}

func TestArray_AppendAsColumn(t *testing.T) {
	c := newStringArray(t, []string{"a", "b"}, nil, []string{"c"})

	require.Equal(t, 3, c.Len())
	require.Equal(t, []uint64{2, 2, 3}, c.Offsets().Values())
	require.Equal(t, 3, c.Data().Len())
	require.Equal(t, [][]string{{"a", "b"}, {}, {"c"}}, arrayRows(t, c))
	require.Equal(t, "Array(String)", c.Type().Name())
}

func TestArray_AppendAsColumn_TypeMismatch(t *testing.T) {
	c := NewArray(NewString())

	err := c.AppendAsColumn(NewUInt64FromSlice([]uint64{1}))
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Contains(t, err.Error(), "can't append column of type UInt64 to column type String")

	require.ErrorIs(t, c.AppendAsColumn(nil), errs.ErrValidation)
	require.Equal(t, 0, c.Len())
}

func TestArray_GetAsColumn_OutOfRange(t *testing.T) {
	c := newStringArray(t, []string{"a"})

	_, err := c.GetAsColumn(1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestArray_Item(t *testing.T) {
	c := newStringArray(t, []string{"a"})

	_, err := c.Item(0)
	require.ErrorIs(t, err, errs.ErrUnsupported)

	_, err = c.Item(1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestArray_AppendColumn(t *testing.T) {
	dst := newStringArray(t, []string{"a"})
	src := newStringArray(t, []string{"b", "c"}, []string{"d"})

	require.NoError(t, dst.AppendColumn(src))
	require.Equal(t, []uint64{1, 3, 4}, dst.Offsets().Values())
	require.Equal(t, [][]string{{"a"}, {"b", "c"}, {"d"}}, arrayRows(t, dst))

	err := dst.AppendColumn(NewArray(NewUInt64()))
	require.ErrorIs(t, err, errs.ErrKindMismatch)
	require.ErrorIs(t, dst.AppendColumn(NewString()), errs.ErrKindMismatch)
}

func TestArray_Slice(t *testing.T) {
	c := newStringArray(t, []string{"a", "b"}, []string{"c"}, nil, []string{"d", "e"})

	sliced := c.Slice(1, 2).(*Array)
	require.Equal(t, []uint64{1, 1}, sliced.Offsets().Values())
	require.Equal(t, [][]string{{"c"}, {}}, arrayRows(t, sliced))

	clamped := c.Slice(2, 10).(*Array)
	require.Equal(t, [][]string{{}, {"d", "e"}}, arrayRows(t, clamped))

	empty := c.Slice(4, 1).(*Array)
	require.Equal(t, 0, empty.Len())
	require.True(t, empty.Type().Equal(c.Type()))
}

func TestArray_CloneEmptyAndSwap(t *testing.T) {
	a := newStringArray(t, []string{"a"})
	clone := a.CloneEmpty().(*Array)
	require.Equal(t, 0, clone.Len())
	require.True(t, clone.Type().Equal(a.Type()))

	b := newStringArray(t, []string{"x", "y"}, []string{"z"})
	require.NoError(t, a.Swap(b))
	require.Equal(t, [][]string{{"x", "y"}, {"z"}}, arrayRows(t, a))
	require.Equal(t, [][]string{{"a"}}, arrayRows(t, b))

	require.ErrorIs(t, a.Swap(NewUInt64()), errs.ErrKindMismatch)

	a.Clear()
	require.Equal(t, 0, a.Len())
	require.Equal(t, 0, a.Data().Len())
}

func TestArray_RoundTrip(t *testing.T) {
	src := newStringArray(t, []string{"ab", "c"}, nil, []string{"def"})
	body := saveBody(t, src)

	expected := binary.LittleEndian.AppendUint64(nil, 2)
	expected = binary.LittleEndian.AppendUint64(expected, 2)
	expected = binary.LittleEndian.AppendUint64(expected, 3)
	expected = append(expected, 2, 'a', 'b', 1, 'c', 3, 'd', 'e', 'f')
	require.Equal(t, expected, body)

	dst := NewArray(NewString())
	require.NoError(t, dst.LoadBody(wire.NewBytesReader(body), 3))
	require.Equal(t, arrayRows(t, src), arrayRows(t, dst))
}

func TestArray_NestedRoundTrip(t *testing.T) {
	inner := NewArray(NewUInt64())
	require.NoError(t, inner.AppendAsColumn(NewUInt64FromSlice([]uint64{1, 2})))
	require.NoError(t, inner.AppendAsColumn(NewUInt64FromSlice([]uint64{3})))

	outer := NewArray(NewArray(NewUInt64()))
	require.NoError(t, outer.AppendAsColumn(inner))
	require.Equal(t, "Array(Array(UInt64))", outer.Type().Name())

	body := saveBody(t, outer)
	dst, err := NewByName("Array(Array(UInt64))")
	require.NoError(t, err)
	require.NoError(t, dst.LoadBody(wire.NewBytesReader(body), 1))

	row, err := dst.(*Array).GetAsColumn(0)
	require.NoError(t, err)
	nested := row.(*Array)
	require.Equal(t, []uint64{2, 3}, nested.Offsets().Values())
	require.Equal(t, []uint64{1, 2, 3}, nested.Data().(*UInt64).Values())
}

func TestArray_LoadBody_NonMonotonicOffsets(t *testing.T) {
	body := binary.LittleEndian.AppendUint64(nil, 3)
	body = binary.LittleEndian.AppendUint64(body, 1)

	err := NewArray(NewString()).LoadBody(wire.NewBytesReader(body), 2)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestArray_LoadBody_TruncatedElements(t *testing.T) {
	body := binary.LittleEndian.AppendUint64(nil, 2)
	body = append(body, 1, 'a')

	err := NewArray(NewString()).LoadBody(wire.NewBytesReader(body), 1)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestArray_LoadBody_ZeroRows(t *testing.T) {
	c := newStringArray(t, []string{"a"})

	require.NoError(t, c.LoadBody(wire.NewBytesReader(nil), 0))
	require.Equal(t, 0, c.Len())
	require.Equal(t, 0, c.Data().Len())
	require.True(t, c.Type().Equal(format.Array(format.String())))
}
