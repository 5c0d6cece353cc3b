package block

import (
	"io"

	"github.com/arloliu/bytecol/column"
	"github.com/arloliu/bytecol/internal/hash"
	"github.com/arloliu/bytecol/wire"
)

// ColumnStats describes one column of a block.
type ColumnStats struct {
	Name     string
	Type     string
	Rows     int
	BodySize int64  // encoded body size in bytes
	Checksum uint64 // xxHash64 of the encoded body
}

// Stats encodes every column body once and reports its size and digest.
func (b *Block) Stats() ([]ColumnStats, error) {
	stats := make([]ColumnStats, 0, len(b.columns))
	for name, col := range b.Columns() {
		size, sum, err := bodyDigest(col)
		if err != nil {
			return nil, err
		}

		stats = append(stats, ColumnStats{
			Name:     name,
			Type:     col.Type().Name(),
			Rows:     col.Len(),
			BodySize: size,
			Checksum: sum,
		})
	}

	return stats, nil
}

func bodyDigest(col column.Column) (int64, uint64, error) {
	digest := hash.NewDigest()

	out := wire.NewWriter(io.Writer(digest))
	defer out.Release()

	if err := col.SaveBody(out); err != nil {
		return 0, 0, err
	}
	if err := out.Flush(); err != nil {
		return 0, 0, err
	}

	return out.Written(), digest.Sum64(), nil
}
