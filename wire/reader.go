package wire

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/bytecol/endian"
	"github.com/arloliu/bytecol/errs"
)

// Reader implements Input over an io.Reader.
type Reader struct {
	br     *bufio.Reader
	engine endian.EndianEngine
	offset int64
	size   int64 // -1 when the source length is unknown
	fixed  [8]byte
}

var (
	_ Input = (*Reader)(nil)
	_ Sized = (*Reader)(nil)
)

// NewReader returns a Reader that buffers r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &Reader{br: br, engine: endian.WireEngine(), size: -1}
}

// NewBytesReader returns a Reader over an in-memory payload. Unlike a Reader
// from NewReader, it reports the bytes left through Remaining.
func NewBytesReader(data []byte) *Reader {
	r := NewReader(bytes.NewReader(data))
	r.size = int64(len(data))

	return r
}

// Remaining returns the number of unread bytes. known is false for readers
// over a stream of unknown length.
func (r *Reader) Remaining() (n int64, known bool) {
	if r.size < 0 {
		return 0, false
	}

	return r.size - r.offset, true
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadByte implements io.ByteReader so the Reader can feed binary.ReadUvarint.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err == nil {
		r.offset++
	}

	return b, err
}

// ReadUInt64 reads an unsigned varint.
func (r *Reader) ReadUInt64() (uint64, error) {
	start := r.offset
	v, err := binary.ReadUvarint(r)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: varint at offset %d", errs.ErrUnexpectedEOF, start)
		}

		return 0, fmt.Errorf("failed to read varint at offset %d: %w", start, err)
	}

	return v, nil
}

// ReadBytes fills p completely.
func (r *Reader) ReadBytes(p []byte) error {
	n, err := io.ReadFull(r.br, p)
	r.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: need %d bytes, got %d", errs.ErrUnexpectedEOF, len(p), n)
		}

		return fmt.Errorf("failed to read %d bytes: %w", len(p), err)
	}

	return nil
}

// ReadString reads a varint length followed by that many bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUInt64()
	if err != nil {
		return "", err
	}
	if n > MaxStringLength {
		return "", fmt.Errorf("%w: string length %d exceeds maximum %d", errs.ErrValidation, n, MaxStringLength)
	}
	if left, known := r.Remaining(); known && n > uint64(left) {
		return "", fmt.Errorf("%w: string length %d, %d bytes left", errs.ErrUnexpectedEOF, n, left)
	}

	buf := make([]byte, n)
	if err := r.ReadBytes(buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

// ReadFixed64 reads a little-endian 64-bit integer.
func (r *Reader) ReadFixed64() (uint64, error) {
	if err := r.ReadBytes(r.fixed[:]); err != nil {
		return 0, err
	}

	return r.engine.Uint64(r.fixed[:]), nil
}
