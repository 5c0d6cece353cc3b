package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/bytecol/block"
	"github.com/arloliu/bytecol/column"
	"github.com/arloliu/bytecol/errs"
)

type dumpOptions struct {
	column string
	trim   bool
	header bool
	sep    string
}

func newDumpCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the rows of a block file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDump(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("input", "i", "", "Block file (required)")
	cmd.Flags().String("column", "", "Only print this column")
	cmd.Flags().Bool("trim", false, "Trim trailing zero bytes of FixedString rows")
	cmd.Flags().Bool("header", true, "Print a header line before each column")
	cmd.Flags().Bool("json", false, "Print one JSON object per column")
	cmd.Flags().String("separator", ",", "Element separator for Array rows")
	cmd.Flags().Bool("verify", true, "Verify the block checksum")

	return cmd
}

func (a *app) runDump(stdout io.Writer) error {
	input, err := requireString(a.v, "input")
	if err != nil {
		return err
	}

	b, compression, _, err := readBlockFile(input, block.WithChecksum(a.v.GetBool("verify")))
	if err != nil {
		return err
	}
	a.log.Debug("loaded block",
		zap.String("input", input),
		zap.Stringer("compression", compression),
		zap.Int("columns", b.NumColumns()),
		zap.Int("rows", b.Rows()),
	)

	opts := dumpOptions{
		column: a.v.GetString("column"),
		trim:   a.v.GetBool("trim"),
		header: a.v.GetBool("header"),
		sep:    a.v.GetString("separator"),
	}
	if opts.column != "" {
		if _, ok := b.Column(opts.column); !ok {
			return fmt.Errorf("column %q not found in %s", opts.column, input)
		}
	}

	w := bufio.NewWriter(stdout)
	if a.v.GetBool("json") {
		err = dumpJSON(w, b, opts)
	} else {
		err = dumpText(w, b, opts)
	}
	if err != nil {
		return err
	}

	return w.Flush()
}

func dumpText(w io.Writer, b *block.Block, opts dumpOptions) error {
	for name, col := range b.Columns() {
		if opts.column != "" && name != opts.column {
			continue
		}

		if opts.header {
			fmt.Fprintf(w, "# %s %s (%d rows)\n", name, col.Type(), col.Len())
		}
		for i := 0; i < col.Len(); i++ {
			s, err := formatRow(col, i, opts)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, s+"\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

type jsonColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Rows []any  `json:"rows"`
}

func dumpJSON(w io.Writer, b *block.Block, opts dumpOptions) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for name, col := range b.Columns() {
		if opts.column != "" && name != opts.column {
			continue
		}

		out := jsonColumn{Name: name, Type: col.Type().Name(), Rows: make([]any, 0, col.Len())}
		for i := 0; i < col.Len(); i++ {
			v, err := rowValue(col, i, opts)
			if err != nil {
				return err
			}
			out.Rows = append(out.Rows, v)
		}

		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode column %q: %w", name, err)
		}
	}

	return nil
}

// formatRow renders row i of col as one line of text.
func formatRow(col column.Column, i int, opts dumpOptions) (string, error) {
	switch c := col.(type) {
	case *column.UInt64:
		return strconv.FormatUint(c.Get(i), 10), nil
	case *column.Array:
		elems, err := c.GetAsColumn(i)
		if err != nil {
			return "", err
		}

		parts := make([]string, elems.Len())
		for j := range parts {
			if parts[j], err = formatRow(elems, j, opts); err != nil {
				return "", err
			}
		}

		return strings.Join(parts, opts.sep), nil
	default:
		item, err := col.Item(i)
		if err != nil {
			return "", err
		}

		return string(trimRow(col, item.Data, opts)), nil
	}
}

// rowValue returns row i of col as a JSON-friendly value.
func rowValue(col column.Column, i int, opts dumpOptions) (any, error) {
	switch c := col.(type) {
	case *column.UInt64:
		return c.Get(i), nil
	case *column.Array:
		elems, err := c.GetAsColumn(i)
		if err != nil {
			return nil, err
		}

		values := make([]any, elems.Len())
		for j := range values {
			if values[j], err = rowValue(elems, j, opts); err != nil {
				return nil, err
			}
		}

		return values, nil
	case *column.String, *column.FixedString:
		item, err := col.Item(i)
		if err != nil {
			return nil, err
		}

		return string(trimRow(col, item.Data, opts)), nil
	default:
		return nil, fmt.Errorf("%w: dump of %s", errs.ErrUnsupported, col.Type())
	}
}

func trimRow(col column.Column, row []byte, opts dumpOptions) []byte {
	if _, fixed := col.(*column.FixedString); fixed && opts.trim {
		return bytes.TrimRight(row, "\x00")
	}

	return row
}
