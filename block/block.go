package block

import (
	"fmt"
	"io"
	"iter"

	"github.com/arloliu/bytecol/column"
	"github.com/arloliu/bytecol/endian"
	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/internal/hash"
	"github.com/arloliu/bytecol/internal/options"
	"github.com/arloliu/bytecol/internal/pool"
	"github.com/arloliu/bytecol/wire"
)

// Block is an ordered set of uniquely named columns with equal row counts.
type Block struct {
	names   []string
	columns []column.Column
	index   map[string]int
}

// New creates an empty block.
func New() *Block {
	return &Block{index: make(map[string]int)}
}

// AppendColumn adds col under name. The block takes ownership of col.
//
// The first column fixes the row count; later columns must match it
// (errs.ErrRowCountMismatch). Names must be unique (errs.ErrDuplicateColumn)
// and non-empty.
func (b *Block) AppendColumn(name string, col column.Column) error {
	if name == "" {
		return fmt.Errorf("%w: empty column name", errs.ErrValidation)
	}
	if col == nil {
		return fmt.Errorf("%w: nil column %q", errs.ErrValidation, name)
	}
	if _, ok := b.index[name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
	}
	if len(b.columns) > 0 && col.Len() != b.Rows() {
		return fmt.Errorf("%w: column %q has %d rows, block has %d",
			errs.ErrRowCountMismatch, name, col.Len(), b.Rows())
	}

	b.index[name] = len(b.columns)
	b.names = append(b.names, name)
	b.columns = append(b.columns, col)

	return nil
}

// Column returns the column stored under name.
func (b *Block) Column(name string) (column.Column, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}

	return b.columns[i], true
}

// Names returns the column names in insertion order.
func (b *Block) Names() []string {
	return append([]string(nil), b.names...)
}

// Columns returns an iterator over (name, column) pairs in insertion order.
func (b *Block) Columns() iter.Seq2[string, column.Column] {
	return func(yield func(string, column.Column) bool) {
		for i, name := range b.names {
			if !yield(name, b.columns[i]) {
				return
			}
		}
	}
}

// NumColumns returns the number of columns.
func (b *Block) NumColumns() int {
	return len(b.columns)
}

// Rows returns the shared row count, 0 for a block without columns.
func (b *Block) Rows() int {
	if len(b.columns) == 0 {
		return 0
	}

	return b.columns[0].Len()
}

// Save serializes the block to w.
//
// The block is staged in a pooled buffer so the checksum trailer can be
// computed before anything reaches w.
func (b *Block) Save(w io.Writer) error {
	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	if err := b.encode(buf); err != nil {
		return err
	}

	buf.B = endian.WireEngine().AppendUint64(buf.B, hash.Sum(buf.Bytes()))
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}

	return nil
}

// MarshalBinary returns the serialized block.
func (b *Block) MarshalBinary() ([]byte, error) {
	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	if err := b.Save(buf); err != nil {
		return nil, err
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

func (b *Block) encode(w io.Writer) error {
	out := wire.NewWriter(w)
	defer out.Release()

	h := Header{Version: Version, Columns: len(b.columns), Rows: b.Rows()}
	if err := h.writeTo(out); err != nil {
		return err
	}

	for i, name := range b.names {
		col := b.columns[i]
		if err := out.WriteString(name); err != nil {
			return err
		}
		if err := out.WriteString(col.Type().Name()); err != nil {
			return err
		}
		if err := col.SaveBody(out); err != nil {
			return fmt.Errorf("failed to write column %q: %w", name, err)
		}
	}

	return out.Flush()
}

// Load reads a serialized block from r until EOF.
//
// Errors wrap errs.ErrInvalidBlockHeader for foreign or unsupported input,
// errs.ErrChecksumMismatch for corrupted input, errs.ErrUnexpectedEOF for a
// truncated body and errs.ErrUnknownType for unrecognized column types.
func Load(r io.Reader, opts ...LoadOption) (*Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read block: %w", err)
	}

	return Decode(data, opts...)
}

// Decode parses a serialized block held in memory. Column data is copied;
// data may be reused once Decode returns.
func Decode(data []byte, opts ...LoadOption) (*Block, error) {
	cfg := &loadConfig{verifyChecksum: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(data) < len(Magic) || [4]byte(data[:4]) != Magic {
		return nil, fmt.Errorf("%w: missing magic", errs.ErrInvalidBlockHeader)
	}
	if len(data) < len(Magic)+1+TrailerSize {
		return nil, fmt.Errorf("%w: block of %d bytes", errs.ErrUnexpectedEOF, len(data))
	}

	payload := data[:len(data)-TrailerSize]
	if cfg.verifyChecksum {
		want := endian.WireEngine().Uint64(data[len(payload):])
		if got := hash.Sum(payload); got != want {
			return nil, fmt.Errorf("%w: computed %#016x, stored %#016x", errs.ErrChecksumMismatch, got, want)
		}
	}

	in := wire.NewBytesReader(payload)
	h, err := readHeader(in, len(payload))
	if err != nil {
		return nil, err
	}

	b := New()
	for i := 0; i < h.Columns; i++ {
		name, err := in.ReadString()
		if err != nil {
			return nil, fmt.Errorf("failed to read name of column %d: %w", i, err)
		}
		typeName, err := in.ReadString()
		if err != nil {
			return nil, fmt.Errorf("failed to read type of column %q: %w", name, err)
		}

		col, err := column.NewByName(typeName)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if err := col.LoadBody(in, h.Rows); err != nil {
			return nil, fmt.Errorf("failed to read column %q: %w", name, err)
		}
		if col.Len() != h.Rows {
			return nil, fmt.Errorf("%w: column %q loaded %d rows, header declares %d",
				errs.ErrRowCountMismatch, name, col.Len(), h.Rows)
		}
		if err := b.AppendColumn(name, col); err != nil {
			return nil, err
		}
	}

	if rest := int64(len(payload)) - in.Offset(); rest != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after last column", errs.ErrValidation, rest)
	}

	return b, nil
}
