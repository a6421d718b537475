package cmd

import (
	"fmt"

	"github.com/iamNilotpal/kit/pkg/ident"
	"github.com/spf13/cobra"
)

func newIDCmd(a *app) *cobra.Command {
	var (
		length int
		count  int
	)

	cmd := &cobra.Command{
		Use:   "id",
		Short: "Generate random identifiers",
		Long: `Generate identifiers made of two uppercase letters followed by digits,
e.g. "QX40917". Identifiers are not cryptographically secure and are not
guaranteed to be unique.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				length = a.cfg.ID.Length
			}
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}

			for range count {
				id, err := ident.Generate(length)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 10, "Identifier length, including the two letters")
	cmd.Flags().IntVar(&count, "count", 1, "Number of identifiers to print")

	return cmd
}
