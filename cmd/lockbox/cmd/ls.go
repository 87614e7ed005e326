package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List credential names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, closeWallet, err := openWallet(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		defer closeWallet()

		names, err := w.ListNames(cmd.Context())
		if err != nil {
			return err
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
