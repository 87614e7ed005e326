package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcleod/lockbox/internal/util"
)

var hasCmd = &cobra.Command{
	Use:   "has NAME",
	Short: "Check whether a credential exists",
	Long:  `Prints "yes" or "no". Exits non-zero when the credential is absent.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := util.Normalize(args[0])

		w, closeWallet, err := openWallet(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		defer closeWallet()

		found, err := w.Contains(cmd.Context(), name)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintln(cmd.OutOrStdout(), "no")
			return fmt.Errorf("%q not present", name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "yes")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hasCmd)
}
