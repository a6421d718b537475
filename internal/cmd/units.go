package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iamNilotpal/kit/pkg/units"
	"github.com/spf13/cobra"
)

func newSizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "size VALUE...",
		Short: "Render byte counts with binary units",
		Long: `Render each VALUE as B, KB, MB, GB, TB or PB with one decimal place.

VALUE is a plain byte count or a size such as "1.5GiB", "300 MB" or "42k".`,
		Example: "  kit size 1536 10MiB",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				n, err := parseSize(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), units.FormatBytes(n))
			}
			return nil
		},
	}
}

func parseSize(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n > 1<<63-1 {
		return 0, fmt.Errorf("size %q is too large", s)
	}
	return int64(n), nil
}

func newDurationCmd(a *app) *cobra.Command {
	var english bool

	cmd := &cobra.Command{
		Use:   "duration VALUE...",
		Short: "Render durations in the largest fitting unit",
		Long: `Render each VALUE in milliseconds, seconds, minutes, hours or days with one
decimal place. Labels are Chinese unless --english is set.

VALUE is a millisecond count or a Go duration such as "90s" or "-2h30m".`,
		Example: "  kit duration 1500 90m --english",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := units.Chinese
			if english {
				labels = units.English
			}
			for _, arg := range args {
				ms, err := parseMillis(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), labels.FormatMillis(ms))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&english, "english", false, "Use English unit labels")

	return cmd
}

func parseMillis(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d.Milliseconds(), nil
}
