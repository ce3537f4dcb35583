// cmd/root.go
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/morsecoder/internal/config"
	"github.com/ColonelBlimp/morsecoder/internal/morse"
)

var rootCmd = &cobra.Command{
	Use:   "morsecoder",
	Short: "Morse code transcoder for text, code and signal strings",
	Long: `morsecoder converts between the three written forms of Morse code:
plain text, code strings made of dots and dashes, and signal strings
that spell out the keying pattern tick by tick. Signal strings can
also be played as audible tone on an output device.

Input is taken from the arguments, or from standard input when no
arguments are given.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().IntP("device", "d", -1, "audio device index (-1 for default)")
	rootCmd.PersistentFlags().Float64P("frequency", "f", 880, "beep frequency in Hz")
	rootCmd.PersistentFlags().DurationP("tick", "t", 200*time.Millisecond, "real-time length of one signal tick")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")

	bindFlags()
}

// bindFlags connects the persistent flags to their config keys. Split
// out of init so tests can rebind after a viper reset.
func bindFlags() {
	viper.BindPFlag("device_index", rootCmd.PersistentFlags().Lookup("device"))
	viper.BindPFlag("beep_frequency", rootCmd.PersistentFlags().Lookup("frequency"))
	viper.BindPFlag("beep_tick", rootCmd.PersistentFlags().Lookup("tick"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}

// newTranscoder builds a transcoder from the current settings
func newTranscoder() (*morse.Transcoder, *config.Settings, error) {
	settings, err := config.Get()
	if err != nil {
		return nil, nil, err
	}

	transcoder, err := morse.NewTranscoder(settings.Profile())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid profile: %w", err)
	}

	return transcoder, settings, nil
}

// readInput returns the joined arguments, or all of standard input when
// no arguments were given (for piping)
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// debugClassify reports the detected input representation on stderr
func debugClassify(cmd *cobra.Command, transcoder *morse.Transcoder, input string) {
	if !viper.GetBool("debug") {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "input classified as %s\n", transcoder.Classify(input))
}
