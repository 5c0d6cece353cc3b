package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/internal/pool"
	"github.com/stretchr/testify/require"
)

func TestWriter_Reader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	defer w.Release()

	require.NoError(t, w.WriteUInt64(0))
	require.NoError(t, w.WriteUInt64(127))
	require.NoError(t, w.WriteUInt64(128))
	require.NoError(t, w.WriteUInt64(^uint64(0)))
	require.NoError(t, w.WriteString("hello"))
	require.NoError(t, w.WriteString(""))
	require.NoError(t, w.WriteFixed64(0x0102030405060708))
	require.NoError(t, w.WriteBytes([]byte{0xde, 0xad}))
	require.NoError(t, w.Flush())
	require.Equal(t, int64(buf.Len()), w.Written())
	require.Equal(t, 0, w.Buffered())

	r := NewBytesReader(buf.Bytes())

	for _, expected := range []uint64{0, 127, 128, ^uint64(0)} {
		v, err := r.ReadUInt64()
		require.NoError(t, err)
		require.Equal(t, expected, v)
	}

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	s, err = r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "", s)

	v, err := r.ReadFixed64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), v)

	raw := make([]byte, 2)
	require.NoError(t, r.ReadBytes(raw))
	require.Equal(t, []byte{0xde, 0xad}, raw)
	require.Equal(t, int64(buf.Len()), r.Offset())

	_, err = r.ReadUInt64()
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestWriter_StringEncoding(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	defer w.Release()

	require.NoError(t, w.WriteString("abc"))
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{3, 'a', 'b', 'c'}, buf.Bytes())
}

func TestWriter_LargePayloadWritesThrough(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	defer w.Release()

	large := strings.Repeat("x", pool.WriterBufferDefaultSize*3)
	require.NoError(t, w.WriteUInt64(7))
	require.NoError(t, w.WriteString(large))
	require.NoError(t, w.WriteBytes([]byte(large)))
	require.NoError(t, w.Flush())

	r := NewBytesReader(buf.Bytes())
	v, err := r.ReadUInt64()
	require.NoError(t, err)
	require.Equal(t, uint64(7), v)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, large, s)

	raw := make([]byte, len(large))
	require.NoError(t, r.ReadBytes(raw))
	require.Equal(t, large, string(raw))
}

func TestWriter_ManySmallWritesAutoFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	defer w.Release()

	for i := 0; i < 10_000; i++ {
		require.NoError(t, w.WriteFixed64(uint64(i)))
	}
	require.Greater(t, w.Written(), int64(0), "staging buffer should have flushed on its own")
	require.NoError(t, w.Flush())
	require.Equal(t, 80_000, buf.Len())
}

func TestWriter_PropagatesError(t *testing.T) {
	w := NewWriter(failingWriter{})
	defer w.Release()

	require.NoError(t, w.WriteString("buffered"))
	require.ErrorIs(t, w.Flush(), io.ErrClosedPipe)
}

func TestReader_ReadBytes_Truncated(t *testing.T) {
	r := NewBytesReader([]byte("abcd"))

	err := r.ReadBytes(make([]byte, 10))
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	require.Contains(t, err.Error(), "need 10 bytes, got 4")
}

func TestReader_ReadUInt64_TruncatedVarint(t *testing.T) {
	// Continuation bit set on the last available byte.
	r := NewBytesReader([]byte{0x80, 0x80})

	_, err := r.ReadUInt64()
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestReader_ReadUInt64_Overflow(t *testing.T) {
	r := NewBytesReader(bytes.Repeat([]byte{0xff}, 11))

	_, err := r.ReadUInt64()
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestReader_ReadString_TooLong(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteUInt64(MaxStringLength+1))
	require.NoError(t, w.Flush())
	w.Release()

	_, err := NewBytesReader(buf.Bytes()).ReadString()
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestReader_Remaining(t *testing.T) {
	r := NewBytesReader([]byte{3, 'a', 'b', 'c', 0xff})

	n, known := r.Remaining()
	require.True(t, known)
	require.Equal(t, int64(5), n)

	_, err := r.ReadString()
	require.NoError(t, err)
	n, _ = r.Remaining()
	require.Equal(t, int64(1), n)

	_, known = NewReader(bytes.NewReader([]byte{1})).Remaining()
	require.False(t, known, "stream length is unknown")
}

func TestReader_ReadString_LengthBeyondInput(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteUInt64(MaxStringLength))
	require.NoError(t, w.WriteBytes([]byte("short")))
	require.NoError(t, w.Flush())
	w.Release()

	_, err := NewBytesReader(buf.Bytes()).ReadString()
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	require.Contains(t, err.Error(), "5 bytes left")
}

func TestReader_ReadFixed64_Truncated(t *testing.T) {
	_, err := NewBytesReader([]byte{1, 2, 3}).ReadFixed64()
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestReader_PropagatesIOError(t *testing.T) {
	boom := errors.New("boom")
	r := NewReader(io.MultiReader(bytes.NewReader([]byte{1}), errReader{err: boom}))

	err := r.ReadBytes(make([]byte, 4))
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, errs.ErrUnexpectedEOF)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
