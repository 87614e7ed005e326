package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmcleod/lockbox/internal/util"
	"github.com/jmcleod/lockbox/wallet"
)

var getOut string

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Fetch a credential",
	Long: `Prints a text credential to stdout. Binary credentials are written
raw, to stdout or to the file given with --out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := util.Normalize(args[0])

		w, closeWallet, err := openWallet(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		defer closeWallet()

		v, err := w.Get(cmd.Context(), name)
		if err != nil {
			return err
		}

		if v.Kind() == wallet.KindBinary {
			if getOut != "" {
				return os.WriteFile(getOut, v.Bytes(), 0o600)
			}
			_, err := cmd.OutOrStdout().Write(v.Bytes())
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v.Text())
		return nil
	},
}

func init() {
	getCmd.Flags().StringVar(&getOut, "out", "", "write a binary value to this file instead of stdout")
	rootCmd.AddCommand(getCmd)
}
