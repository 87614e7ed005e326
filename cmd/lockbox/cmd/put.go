package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/jmcleod/lockbox/internal/util"
	"github.com/jmcleod/lockbox/wallet"
)

var putBinary bool

var putCmd = &cobra.Command{
	Use:   "put NAME",
	Short: "Store a credential read from stdin",
	Long: `Reads the credential value from stdin and stores it under NAME.
The value is held in locked memory until it has been written to the
backend. With --binary the bytes are stored verbatim; otherwise the
value is stored as text with a single trailing newline stripped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := util.Normalize(args[0])

		w, closeWallet, err := openWallet(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		defer closeWallet()

		buf, err := memguard.NewBufferFromEntireReader(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading value: %w", err)
		}
		defer buf.Destroy()
		if buf.Size() == 0 {
			return fmt.Errorf("refusing to store an empty value")
		}

		var value wallet.Value
		if putBinary {
			value = wallet.Binary(buf.Bytes())
		} else {
			value = wallet.Text(strings.TrimSuffix(buf.String(), "\n"))
		}

		if err := w.Put(cmd.Context(), name, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %q\n", name)
		return nil
	},
}

func init() {
	putCmd.Flags().BoolVar(&putBinary, "binary", false, "store the value as raw bytes")
	rootCmd.AddCommand(putCmd)
}
