package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor implements LZ4 block compression.
//
// An LZ4 block does not record its decoded size, so the codec prefixes it as
// a uvarint:
//
//	uvarint decodedSize | lz4 block
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data as a size-prefixed LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := binary.AppendUvarint(nil, uint64(len(data)))
	prefix := len(dst)
	dst = append(dst, make([]byte, lz4.CompressBlockBound(len(data)))...)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:prefix+n], nil
}

// Decompress decodes a size-prefixed LZ4 block.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, prefix := binary.Uvarint(data)
	if prefix <= 0 {
		return nil, fmt.Errorf("lz4 decompression failed: invalid size prefix")
	}
	if size == 0 || size > MaxDecodedSize {
		return nil, fmt.Errorf("lz4 decompression failed: invalid decoded size %d", size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[prefix:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != len(out) {
		return nil, fmt.Errorf("lz4 decompression failed: decoded %d bytes, expected %d", n, len(out))
	}

	return out, nil
}
