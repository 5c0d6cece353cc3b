package wire

// MaxStringLength bounds a single length-prefixed value read from a stream.
// Larger prefixes are treated as corrupt input rather than allocated.
const MaxStringLength = 1 << 30

// Input is a byte-oriented source of column body data.
type Input interface {
	// ReadUInt64 reads an unsigned varint.
	ReadUInt64() (uint64, error)

	// ReadBytes fills p completely. It fails with an error wrapping
	// errs.ErrUnexpectedEOF if the stream ends first.
	ReadBytes(p []byte) error

	// ReadString reads a varint length followed by that many bytes.
	ReadString() (string, error)

	// ReadFixed64 reads a little-endian 64-bit integer.
	ReadFixed64() (uint64, error)
}

// Sized is implemented by inputs that know how many bytes are left. Decoders
// use it to reject lengths and row counts the input cannot possibly hold
// before allocating for them.
type Sized interface {
	Remaining() (n int64, known bool)
}

// Output is a byte-oriented sink for column body data.
type Output interface {
	// WriteBytes writes p as-is.
	WriteBytes(p []byte) error

	// WriteUInt64 writes v as an unsigned varint.
	WriteUInt64(v uint64) error

	// WriteString writes len(s) as an unsigned varint followed by the bytes of s.
	WriteString(s string) error

	// WriteFixed64 writes v as a little-endian 64-bit integer.
	WriteFixed64(v uint64) error
}
