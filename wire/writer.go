package wire

import (
	"encoding/binary"
	"io"

	"github.com/arloliu/bytecol/endian"
	"github.com/arloliu/bytecol/internal/pool"
)

// Writer implements Output over an io.Writer.
//
// Output is staged in a pooled buffer and handed to the underlying writer when
// the buffer fills up or on Flush. Call Release when done to return the buffer
// to the pool; the Writer must not be used afterwards.
type Writer struct {
	w       io.Writer
	buf     *pool.ByteBuffer
	engine  endian.EndianEngine
	written int64
}

var _ Output = (*Writer)(nil)

// NewWriter returns a Writer that stages output for w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:      w,
		buf:    pool.GetWriterBuffer(),
		engine: endian.WireEngine(),
	}
}

// WriteBytes writes p as-is. Payloads larger than the staging buffer are
// written through after flushing what is already staged.
func (w *Writer) WriteBytes(p []byte) error {
	if w.buf.Len()+len(p) <= pool.WriterBufferDefaultSize {
		w.buf.MustWrite(p)
		return nil
	}

	if err := w.Flush(); err != nil {
		return err
	}

	return w.writeThrough(p)
}

// WriteUInt64 writes v as an unsigned varint.
func (w *Writer) WriteUInt64(v uint64) error {
	w.buf.B = binary.AppendUvarint(w.buf.B, v)
	return w.maybeFlush()
}

// WriteString writes len(s) as an unsigned varint followed by the bytes of s.
func (w *Writer) WriteString(s string) error {
	w.buf.B = binary.AppendUvarint(w.buf.B, uint64(len(s)))
	if w.buf.Len()+len(s) <= pool.WriterBufferDefaultSize {
		w.buf.MustWriteString(s)
		return nil
	}

	if err := w.Flush(); err != nil {
		return err
	}

	return w.writeThrough([]byte(s))
}

// WriteFixed64 writes v as a little-endian 64-bit integer.
func (w *Writer) WriteFixed64(v uint64) error {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
	return w.maybeFlush()
}

// Flush writes all staged bytes to the underlying writer.
func (w *Writer) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}

	n, err := w.buf.WriteTo(w.w)
	w.written += n
	w.buf.Reset()

	return err
}

// Written returns the number of bytes handed to the underlying writer so far.
func (w *Writer) Written() int64 {
	return w.written
}

// Buffered returns the number of staged bytes not yet flushed.
func (w *Writer) Buffered() int {
	return w.buf.Len()
}

// Release returns the staging buffer to the pool. Unflushed bytes are dropped.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutWriterBuffer(w.buf)
		w.buf = nil
	}
}

func (w *Writer) maybeFlush() error {
	if w.buf.Len() >= pool.WriterBufferDefaultSize {
		return w.Flush()
	}

	return nil
}

func (w *Writer) writeThrough(p []byte) error {
	n, err := w.w.Write(p)
	w.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}

	return err
}
