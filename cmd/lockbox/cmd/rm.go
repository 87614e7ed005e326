package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcleod/lockbox/internal/util"
)

var rmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a credential",
	Long:  `Removes the credential stored under NAME. Removing an absent name succeeds.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := util.Normalize(args[0])

		w, closeWallet, err := openWallet(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		defer closeWallet()

		if err := w.Remove(cmd.Context(), name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
