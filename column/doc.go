// Package column implements in-memory columns of byte strings and their wire
// encoding.
//
// Two byte-string kinds are provided:
//
//   - String stores rows of arbitrary length in an arena of append-only blocks.
//     Rows are addressed through (block, offset, length) views, so appending a
//     row costs one copy into the active block and no per-row heap allocation.
//   - FixedString stores rows of exactly N bytes in one contiguous buffer.
//     Shorter values are right-padded with zero bytes and the padding is part
//     of the row when it is read back.
//
// UInt64 and Array complete the set of column kinds needed to carry arrays of
// byte strings (Array(String), Array(FixedString(N))).
//
// # Column Capability
//
// Every column implements Column. Generic code dispatches on Type() and uses
// AppendColumn, Slice, CloneEmpty and Swap without knowing the concrete kind.
// Operations that combine two columns require both to be the same kind (and,
// for FixedString, the same width); otherwise they return an error wrapping
// errs.ErrKindMismatch and leave both columns unchanged:
//
//	if err := dst.AppendColumn(src); errors.Is(err, errs.ErrKindMismatch) {
//	    // heterogeneous batch: skip src
//	}
//
// # Wire Format
//
// LoadBody and SaveBody read and write the column body only; the row count
// travels out-of-band:
//
//	FixedString(N)  N*rows raw bytes
//	String          per row: uvarint length, then the bytes
//	UInt64          8*rows little-endian bytes
//	Array(T)        UInt64 offsets body, then the T body of offsets[rows-1] rows
//
// A failed LoadBody leaves the column in an unspecified, partially loaded state;
// callers must discard it.
//
// # Views And Ownership
//
// Byte slices returned by At, Get, Item and All alias column storage. They are
// valid until the column is next modified (Append on FixedString, Clear, Swap,
// LoadBody) and must not be written to. Slice and AppendColumn always deep-copy,
// so no two columns ever share storage.
//
// # Thread Safety
//
// Columns are not safe for concurrent use. Concurrent reads are safe only when
// no goroutine is modifying the column. Swap and NewStringFromPayload hand a
// populated column's storage over without copying.
package column
