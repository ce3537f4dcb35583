// cmd/classify.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [input]",
	Short: "Report whether input is text, code or signal",
	Long: `Report which representation the input is in: "text", "code" or
"signal". A string counts as code when its distinct non-whitespace
characters are exactly the dot and dash symbols, and as signal when
they are exactly the mark and pause symbols. Everything else is
text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		transcoder, _, err := newTranscoder()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), transcoder.Classify(input))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
