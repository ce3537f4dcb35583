// cmd/tables.go
package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the active code tables",
	Long: `Print the active encoding table (symbol to code), or with --reverse
the decoding table (code to symbol). The tables reflect the
configured punctuation, non-Latin and prosign settings, so entries
disabled in the config do not appear.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transcoder, _, err := newTranscoder()
		if err != nil {
			return err
		}

		reverse, err := cmd.Flags().GetBool("reverse")
		if err != nil {
			return err
		}

		table := transcoder.EncodingTable()
		if reverse {
			table = transcoder.DecodingTable()
		}

		keys := make([]string, 0, len(table))
		for key := range table {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, table[key])
		}
		return nil
	},
}

func init() {
	tablesCmd.Flags().BoolP("reverse", "r", false, "print the decoding table (code to symbol)")
	rootCmd.AddCommand(tablesCmd)
}
