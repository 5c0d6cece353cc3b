// Package errs defines the sentinel errors returned by bytecol packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is:
//
//	if err := col.Append(value); errors.Is(err, errs.ErrValidation) {
//	    // value is wider than the column
//	}
package errs

import "errors"

var (
	// ErrValidation is returned when a value does not fit the column it is appended to,
	// for example a FixedString value longer than the configured width.
	ErrValidation = errors.New("validation failed")

	// ErrIndexOutOfRange is returned by checked accessors for a row index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKindMismatch is returned when AppendColumn or Swap combines columns of
	// different kinds. AppendColumn also rejects FixedString columns of different widths.
	ErrKindMismatch = errors.New("column kind mismatch")

	// ErrUnexpectedEOF is returned when a stream ends before a declared length prefix
	// or payload could be read completely.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")

	// ErrInvalidWidth is returned when a FixedString column is created with width zero.
	ErrInvalidWidth = errors.New("invalid fixed string width")

	// ErrInvalidItemView is returned when a pre-built item view does not lie inside its payload.
	ErrInvalidItemView = errors.New("invalid item view")

	// ErrUnknownType is returned when a column type name cannot be parsed or has no column implementation.
	ErrUnknownType = errors.New("unknown column type")

	// ErrInvalidBlockHeader is returned when a serialized block has a bad magic number or version.
	ErrInvalidBlockHeader = errors.New("invalid block header")

	// ErrChecksumMismatch is returned when a serialized block fails checksum verification.
	ErrChecksumMismatch = errors.New("block checksum mismatch")

	// ErrRowCountMismatch is returned when a column added to a block has a different row count
	// than the columns already in it.
	ErrRowCountMismatch = errors.New("row count mismatch")

	// ErrDuplicateColumn is returned when a block already holds a column with the given name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrUnsupported is returned by operations a column kind does not provide,
	// such as a single-row item view of an Array column.
	ErrUnsupported = errors.New("operation not supported")

	// ErrInvalidContainer is returned when a colblock file container is malformed.
	ErrInvalidContainer = errors.New("invalid container")
)
