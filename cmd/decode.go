// cmd/decode.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [code]",
	Short: "Convert Morse code to text",
	Long: `Convert a Morse code string to text. Signal input is translated to
code first, and plain text passes through unchanged.

Code groups that match no known character are printed as the
configured unknown glyph. The decoded text is capitalized like a
sentence; the original casing is not recoverable from Morse code.`,
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
		fmt.Fprintln(cmd.OutOrStdout(), transcoder.Decode(input))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
