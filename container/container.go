// Package container wraps a serialized block in a small file envelope that
// records how the block was compressed.
//
//	magic "BCF1" | u8 compression type | payload
//
// The payload is the native block encoding (see package block), compressed
// with the recorded algorithm.
package container

import (
	"fmt"
	"io"

	"github.com/arloliu/bytecol/block"
	"github.com/arloliu/bytecol/compress"
	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/format"
)

// HeaderSize is the size of the envelope preceding the payload.
const HeaderSize = 5

// Magic identifies a block file.
var Magic = [4]byte{'B', 'C', 'F', '1'}

// Write serializes b, compresses it with compression and writes the envelope to w.
func Write(w io.Writer, b *block.Block, compression format.CompressionType) (compress.Stats, error) {
	raw, err := b.MarshalBinary()
	if err != nil {
		return compress.Stats{}, err
	}

	payload, stats, err := compress.Compress(compression, raw)
	if err != nil {
		return compress.Stats{}, err
	}

	header := [HeaderSize]byte{Magic[0], Magic[1], Magic[2], Magic[3], byte(compression)}
	if _, err := w.Write(header[:]); err != nil {
		return compress.Stats{}, fmt.Errorf("failed to write container header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return compress.Stats{}, fmt.Errorf("failed to write container payload: %w", err)
	}

	return stats, nil
}

// Read reads a whole envelope from r and decodes the block inside.
func Read(r io.Reader, opts ...block.LoadOption) (*block.Block, format.CompressionType, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read container: %w", err)
	}

	return Decode(data, opts...)
}

// Decode parses an envelope held in memory.
func Decode(data []byte, opts ...block.LoadOption) (*block.Block, format.CompressionType, error) {
	compression, payload, err := split(data)
	if err != nil {
		return nil, 0, err
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", errs.ErrInvalidContainer, err)
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", errs.ErrInvalidContainer, err)
	}

	b, err := block.Decode(raw, opts...)
	if err != nil {
		return nil, 0, err
	}

	return b, compression, nil
}

func split(data []byte) (format.CompressionType, []byte, error) {
	if len(data) < HeaderSize {
		return 0, nil, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidContainer, len(data))
	}
	if [4]byte(data[:4]) != Magic {
		return 0, nil, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidContainer, data[:4])
	}

	return format.CompressionType(data[4]), data[HeaderSize:], nil
}
