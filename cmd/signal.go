// cmd/signal.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signalCmd = &cobra.Command{
	Use:   "signal [text or code]",
	Short: "Convert text or Morse code to a signal string",
	Long: `Convert input to a signal string: the keying pattern written out
tick by tick with mark and pause symbols ('█' and '_' by default).
A dot is one mark tick, a dash is three, and the gaps inside and
between characters and words follow the configured timing.`,
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
		fmt.Fprintln(cmd.OutOrStdout(), transcoder.Signal(input))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signalCmd)
}
