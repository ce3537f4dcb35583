// cmd/encode.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Convert text to Morse code",
	Long: `Convert text to a Morse code string. Signal input is translated
back to code first, and code input passes through unchanged.

Characters without a code are skipped. Untranslatable input such as
a lone word of punctuation with punctuation disabled simply vanishes
from the output.`,
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
		fmt.Fprintln(cmd.OutOrStdout(), transcoder.Encode(input))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}
