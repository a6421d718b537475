package cmd

import (
	"fmt"
	"os"

	"github.com/iamNilotpal/kit/pkg/gzipfile"
	"github.com/iamNilotpal/kit/pkg/units"
	"github.com/spf13/cobra"
)

func newGzipCmd(a *app) *cobra.Command {
	var (
		output  string
		level   int
		charset string
		comment string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "gzip FILE",
		Short: "Compress a file, embedding its name",
		Long: `Compress FILE into FILE.gz (or --output).

The original file name is stored in the gzip header encoded with --charset,
so names outside Latin-1 survive a round trip through gunzip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := gzipfile.Options{
				Level:       a.cfg.Gzip.Level,
				Charset:     a.cfg.Gzip.Charset,
				SegmentSize: a.cfg.Stream.SegmentSize,
				Comment:     comment,
				Force:       force,
				Logger:      a.log.Desugar(),
			}
			if cmd.Flags().Changed("level") {
				opts.Level = level
			}
			if cmd.Flags().Changed("charset") {
				opts.Charset = charset
			}

			dst, err := gzipfile.CompressFile(args[0], output, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s -> %s\n", dst, fileSize(args[0]), fileSize(dst))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default FILE.gz)")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Compression level, 1 (fastest) to 9 (best)")
	cmd.Flags().StringVar(&charset, "charset", "", "Charset of the embedded file name")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment stored in the gzip header")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing output file")

	return cmd
}

func newGunzipCmd(a *app) *cobra.Command {
	var (
		dir     string
		charset string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "gunzip FILE",
		Short: "Restore a gzip file under its embedded name",
		Long: `Decompress FILE into --dir (default: FILE's directory).

The output is named after the name embedded in the gzip header, decoded with
--charset. Without an embedded name, the gzip suffix is dropped from FILE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := gzipfile.Options{
				Charset: a.cfg.Gzip.Charset,
				Force:   force,
				Logger:  a.log.Desugar(),
			}
			if cmd.Flags().Changed("charset") {
				opts.Charset = charset
			}

			dst, err := gzipfile.DecompressFile(args[0], dir, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s -> %s\n", dst, fileSize(args[0]), fileSize(dst))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory")
	cmd.Flags().StringVar(&charset, "charset", "", "Charset of the embedded file name")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing output file")

	return cmd
}

// fileSize renders the size of path, or "?" if it cannot be read.
func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return units.FormatBytes(info.Size())
}
