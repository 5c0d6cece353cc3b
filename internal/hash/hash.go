// Package hash provides the xxHash64 digests used to checksum serialized blocks.
package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewDigest returns a streaming xxHash64 digest. It implements io.Writer, so
// it can sit behind an io.MultiWriter while a block body is being written.
func NewDigest() *xxhash.Digest {
	return xxhash.New()
}
