package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmcleod/lockbox/wallet"
)

// exportEntry mirrors the API's credential JSON shape so CLI exports and
// HTTP exports are interchangeable.
type exportEntry struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every credential as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, closeWallet, err := openWallet(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		defer closeWallet()

		all, err := w.GetAll(cmd.Context())
		if err != nil {
			return err
		}

		entries := make([]exportEntry, 0, len(all))
		for name, v := range all {
			e := exportEntry{Name: name}
			if v.Kind() == wallet.KindBinary {
				e.Kind = "binary"
				e.Value = base64.StdEncoding.EncodeToString(v.Bytes())
			} else {
				e.Kind = "text"
				e.Value = v.Text()
			}
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
