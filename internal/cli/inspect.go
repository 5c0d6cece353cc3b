package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe the columns of a block file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInspect(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("input", "i", "", "Block file (required)")

	return cmd
}

func (a *app) runInspect(stdout io.Writer) error {
	input, err := requireString(a.v, "input")
	if err != nil {
		return err
	}

	b, compression, size, err := readBlockFile(input)
	if err != nil {
		return err
	}

	stats, err := b.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "file:        %s (%s)\n", input, humanize.Bytes(uint64(size)))
	fmt.Fprintf(stdout, "compression: %s\n", compression)
	fmt.Fprintf(stdout, "rows:        %s\n", humanize.Comma(int64(b.Rows())))
	fmt.Fprintf(stdout, "columns:     %d\n\n", b.NumColumns())

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tROWS\tBODY\tXXHASH64")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%016x\n",
			s.Name, s.Type, humanize.Comma(int64(s.Rows)), humanize.Bytes(uint64(s.BodySize)), s.Checksum)
	}

	return tw.Flush()
}
