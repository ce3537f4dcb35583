// cmd/tokens.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [text or code]",
	Short: "Split input into per-character code tokens",
	Long: `Split the input into Morse code tokens, one line per word with the
per-character codes separated by spaces. Text and signal input is
converted to code first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		transcoder, _, err := newTranscoder()
		if err != nil {
			return err
		}

		debugClassify(cmd, transcoder, input)

		for _, word := range transcoder.TokenList(input) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(word, " "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
