// Package block groups named columns that share a row count and serializes
// them in a self-describing native format.
//
// # Format
//
//	magic "BCOL" | version u8 | uvarint columnCount | uvarint rowCount
//	per column:    string name | string type name | column body
//	trailer:       fixed64 little-endian xxHash64 of every preceding byte
//
// Strings are a uvarint length followed by the bytes. Column bodies use the
// layout of the column kind named by the type name (see package column).
//
// # Usage
//
//	b := block.New()
//	if err := b.AppendColumn("name", names); err != nil {
//	    return err
//	}
//	if err := b.Save(w); err != nil {
//	    return err
//	}
//
//	loaded, err := block.Load(r)
//	if errors.Is(err, errs.ErrChecksumMismatch) {
//	    // corrupted input
//	}
//
// A Block is not safe for concurrent mutation.
package block
