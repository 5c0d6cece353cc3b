package block

import (
	"fmt"

	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/wire"
)

const (
	// Version is the native block format version written by Save.
	Version uint8 = 1

	// TrailerSize is the size of the checksum trailer.
	TrailerSize = 8
)

// Magic identifies a serialized block.
var Magic = [4]byte{'B', 'C', 'O', 'L'}

// Header is the leading section of a serialized block.
type Header struct {
	Version uint8
	Columns int
	Rows    int
}

// writeTo encodes the header, magic included.
func (h Header) writeTo(out wire.Output) error {
	if err := out.WriteBytes(Magic[:]); err != nil {
		return err
	}
	if err := out.WriteBytes([]byte{h.Version}); err != nil {
		return err
	}
	if err := out.WriteUInt64(uint64(h.Columns)); err != nil {
		return err
	}

	return out.WriteUInt64(uint64(h.Rows))
}

// readHeader decodes and validates a header. payloadSize is the number of
// bytes between the header start and the trailer; it bounds the counts a
// header may claim.
func readHeader(in wire.Input, payloadSize int) (Header, error) {
	var prefix [5]byte
	if err := in.ReadBytes(prefix[:]); err != nil {
		return Header{}, fmt.Errorf("%w: %w", errs.ErrInvalidBlockHeader, err)
	}
	if [4]byte(prefix[:4]) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidBlockHeader, prefix[:4])
	}

	h := Header{Version: prefix[4]}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidBlockHeader, h.Version)
	}

	columns, err := in.ReadUInt64()
	if err != nil {
		return Header{}, fmt.Errorf("failed to read column count: %w", err)
	}
	rows, err := in.ReadUInt64()
	if err != nil {
		return Header{}, fmt.Errorf("failed to read row count: %w", err)
	}

	// Every column carries at least a name and a type prefix, and every row of
	// every column kind occupies at least one byte.
	if columns > uint64(payloadSize)/2 {
		return Header{}, fmt.Errorf("%w: column count %d exceeds payload of %d bytes",
			errs.ErrValidation, columns, payloadSize)
	}
	if rows > uint64(payloadSize) {
		return Header{}, fmt.Errorf("%w: row count %d exceeds payload of %d bytes",
			errs.ErrValidation, rows, payloadSize)
	}
	if columns == 0 && rows != 0 {
		return Header{}, fmt.Errorf("%w: %d rows without columns", errs.ErrValidation, rows)
	}

	h.Columns = int(columns)
	h.Rows = int(rows)

	return h, nil
}
