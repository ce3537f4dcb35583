// cmd/fromsignal.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fromSignalCmd = &cobra.Command{
	Use:   "fromsignal [signal]",
	Short: "Convert a signal string back to Morse code",
	Long: `Convert a signal string back to a Morse code string. Mark runs of
dot length become dots, every other mark run becomes a dash, and the
pause runs are mapped back to the configured gaps.

The input must actually be a signal string; anything else is
rejected.`,
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

		code, err := transcoder.FromSignal(input)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fromSignalCmd)
}
