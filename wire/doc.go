// Package wire provides the byte-stream primitives that column bodies are
// encoded with.
//
// Two encodings are used:
//
//   - Unsigned varints (LEB128, as produced by encoding/binary.AppendUvarint)
//     for lengths and counts. A String column writes each row as a varint
//     length followed by the raw bytes.
//   - Fixed 64-bit little-endian integers for UInt64 values and checksums.
//
// Input and Output are the interfaces columns depend on. Reader and Writer are
// the implementations over io.Reader and io.Writer; Writer stages output in a
// pooled buffer and must be flushed.
//
// All truncation errors wrap errs.ErrUnexpectedEOF.
package wire
