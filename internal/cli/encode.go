package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/bytecol/block"
	"github.com/arloliu/bytecol/column"
	"github.com/arloliu/bytecol/errs"
	"github.com/arloliu/bytecol/format"
)

// maxLineSize bounds one input line.
const maxLineSize = 64 * humanize.MiByte

func newEncodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode text lines into a single-column block file",
		Long: `Read one value per line and write them as a column of a block file.

Supported types are String, FixedString(N), UInt64 and Array(T) over those;
array elements are separated by --separator, and an empty line is an empty array.

Example:
  colblock encode --type 'FixedString(8)' --name code --input codes.txt --output codes.bcol --compression zstd`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEncode(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("type", "String", "Column type")
	cmd.Flags().String("name", "value", "Column name")
	cmd.Flags().StringP("input", "i", stdinName, "Input text file, - for stdin")
	cmd.Flags().StringP("output", "o", "", "Output block file (required)")
	cmd.Flags().String("compression", "none", "File compression (none, zstd, s2, lz4)")
	cmd.Flags().String("separator", ",", "Element separator for Array types")

	return cmd
}

func (a *app) runEncode(stdin io.Reader, stdout io.Writer) error {
	output, err := requireString(a.v, "output")
	if err != nil {
		return err
	}

	typ, err := format.ParseType(a.v.GetString("type"))
	if err != nil {
		return err
	}
	compression, err := format.ParseCompression(a.v.GetString("compression"))
	if err != nil {
		return err
	}

	col, err := column.New(typ)
	if err != nil {
		return err
	}

	in, err := openInput(a.v.GetString("input"), stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := readLines(col, in, a.v.GetString("separator")); err != nil {
		return err
	}

	name := a.v.GetString("name")
	b := block.New()
	if err := b.AppendColumn(name, col); err != nil {
		return err
	}

	size, err := writeBlockFile(output, b, compression)
	if err != nil {
		return err
	}

	a.log.Info("encoded block",
		zap.String("column", name),
		zap.Stringer("type", typ),
		zap.Int("rows", col.Len()),
		zap.Stringer("compression", compression),
		zap.Int64("bytes", size),
	)
	fmt.Fprintf(stdout, "wrote %s rows to %s (%s)\n", humanize.Comma(int64(col.Len())), output, humanize.Bytes(uint64(size)))

	return nil
}

// readLines appends one value per line of r to col.
func readLines(col column.Column, r io.Reader, sep string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*humanize.KiByte), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		if err := appendValue(col, scanner.Text(), sep); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func appendValue(col column.Column, value, sep string) error {
	switch c := col.(type) {
	case *column.String:
		c.AppendString(value)
	case *column.FixedString:
		return c.AppendString(value)
	case *column.UInt64:
		v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %w", errs.ErrValidation, err)
		}
		c.Append(v)
	case *column.Array:
		if _, nested := c.Data().(*column.Array); nested {
			return fmt.Errorf("%w: text input for %s", errs.ErrUnsupported, c.Type())
		}

		elems := c.Data().CloneEmpty()
		if value != "" {
			for _, part := range strings.Split(value, sep) {
				if err := appendValue(elems, part, sep); err != nil {
					return err
				}
			}
		}

		return c.AppendAsColumn(elems)
	default:
		return fmt.Errorf("%w: text input for %s", errs.ErrUnsupported, col.Type())
	}

	return nil
}
