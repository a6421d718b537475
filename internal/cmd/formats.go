package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/iamNilotpal/kit/pkg/archive"
	"github.com/spf13/cobra"
)

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List archive formats and their compressors",
		Long: `List every archive format with the built-in compressor it resolves to.

Long and short tar forms (tar.gz and tgz) share one compressor. Formats
without a built-in compressor are shown with "-".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			compressors, err := archive.Default(archive.Options{GzipLevel: a.cfg.Gzip.Level})
			if err != nil {
				return err
			}
			defer compressors.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tEXTENSION\tCOMPRESSOR\tPAIR")
			for _, f := range archive.Formats() {
				name := "-"
				if c, ok := compressors.Get(f); ok {
					name = c.Name()
				}
				pair := "-"
				if other, ok := f.Counterpart(); ok {
					pair = other.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f, f.Extension(), name, pair)
			}
			return w.Flush()
		},
	}
}
