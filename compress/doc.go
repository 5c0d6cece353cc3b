// Package compress provides the codecs used to compress serialized column
// blocks inside a block file.
//
// Column bodies themselves are never compressed; compression applies to a
// whole serialized block when it is written to a file container.
//
// Supported algorithms, selected by format.CompressionType:
//   - None: data passes through unchanged
//   - Zstd: best ratio, moderate speed (klauspost/compress/zstd)
//   - S2: balanced speed and ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4)
//
// Typical use:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(blockBytes)
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use. Decompress rejects outputs larger than MaxDecodedSize.
package compress
