package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/bytecol/errs"
)

type (
	Code            uint8
	CompressionType uint8
)

const (
	CodeString      Code = 0x1 // CodeString represents a variable-width byte string column.
	CodeFixedString Code = 0x2 // CodeFixedString represents a fixed-width, zero-padded byte string column.
	CodeUInt64      Code = 0x3 // CodeUInt64 represents a column of unsigned 64-bit integers.
	CodeArray       Code = 0x4 // CodeArray represents a column of arrays over a nested column.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c Code) String() string {
	switch c {
	case CodeString:
		return "String"
	case CodeFixedString:
		return "FixedString"
	case CodeUInt64:
		return "UInt64"
	case CodeArray:
		return "Array"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-insensitive compression name to its CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unsupported compression %q", name)
	}
}

// Type is the type tag carried by every column. It identifies the column kind
// for dispatch by generic code and, for parameterized kinds, the parameter
// (FixedString width, Array element type).
//
// Type values are immutable; compare them with Equal rather than ==.
type Type struct {
	code  Code
	width int
	item  *Type
}

// String returns the type tag of a variable-width byte string column.
func String() Type { return Type{code: CodeString} }

// UInt64 returns the type tag of an unsigned 64-bit integer column.
func UInt64() Type { return Type{code: CodeUInt64} }

// FixedString returns the type tag of a fixed-width byte string column of n bytes per row.
func FixedString(n int) Type { return Type{code: CodeFixedString, width: n} }

// Array returns the type tag of an array column whose elements have the given type.
func Array(item Type) Type {
	it := item
	return Type{code: CodeArray, item: &it}
}

// Code returns the kind discriminant of the type.
func (t Type) Code() Code { return t.code }

// Width returns the row width of a FixedString type, or 0 for other kinds.
func (t Type) Width() int { return t.width }

// Item returns the element type of an Array type. The second return value is
// false for non-array types.
func (t Type) Item() (Type, bool) {
	if t.item == nil {
		return Type{}, false
	}

	return *t.item, true
}

// Equal reports whether two type tags describe the same column type.
func (t Type) Equal(other Type) bool {
	if t.code != other.code || t.width != other.width {
		return false
	}
	if t.item == nil || other.item == nil {
		return t.item == nil && other.item == nil
	}

	return t.item.Equal(*other.item)
}

// Name returns the canonical type name, e.g. "String", "FixedString(16)" or "Array(String)".
func (t Type) Name() string {
	switch t.code {
	case CodeFixedString:
		return "FixedString(" + strconv.Itoa(t.width) + ")"
	case CodeArray:
		if t.item == nil {
			return "Array()"
		}

		return "Array(" + t.item.Name() + ")"
	default:
		return t.code.String()
	}
}

func (t Type) String() string {
	return t.Name()
}

// ParseType parses a canonical type name as produced by Type.Name.
//
// Whitespace around the name and inside parentheses is ignored. Unknown names
// return an error wrapping errs.ErrUnknownType; FixedString widths that are not
// positive integers return an error wrapping errs.ErrInvalidWidth.
func ParseType(name string) (Type, error) {
	name = strings.TrimSpace(name)

	switch name {
	case "String":
		return String(), nil
	case "UInt64":
		return UInt64(), nil
	}

	if arg, ok := typeArgument(name, "FixedString"); ok {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Type{}, fmt.Errorf("%w: %q", errs.ErrUnknownType, name)
		}
		if n <= 0 {
			return Type{}, fmt.Errorf("%w: %d", errs.ErrInvalidWidth, n)
		}

		return FixedString(n), nil
	}

	if arg, ok := typeArgument(name, "Array"); ok {
		item, err := ParseType(arg)
		if err != nil {
			return Type{}, err
		}

		return Array(item), nil
	}

	return Type{}, fmt.Errorf("%w: %q", errs.ErrUnknownType, name)
}

// typeArgument extracts the parenthesized argument of a parameterized type name.
func typeArgument(name, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", false
	}

	return strings.TrimSpace(rest[1 : len(rest)-1]), true
}
