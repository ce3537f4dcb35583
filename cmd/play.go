// cmd/play.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/morsecoder/internal/audio"
	"github.com/ColonelBlimp/morsecoder/internal/recovery"
)

var playCmd = &cobra.Command{
	Use:   "play [text, code or signal]",
	Short: "Play input as audible Morse code",
	Long: `Convert the input to a signal string and play it as tone on the
configured output device. Pitch, tick length and device are taken
from the config and can be overridden with the global --frequency,
--tick and --device flags.

Interrupt with Ctrl-C to stop playback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		transcoder, settings, err := newTranscoder()
		if err != nil {
			return err
		}

		debugClassify(cmd, transcoder, input)

		sig := transcoder.Signal(input)
		if sig == "" {
			return nil
		}

		beeper := audio.New(audio.Config{
			DeviceIndex: settings.DeviceIndex,
			SampleRate:  uint32(settings.SampleRate),
			Channels:    uint32(settings.Channels),
			BufferSize:  uint32(settings.BufferSize),
		})
		if err := beeper.Init(); err != nil {
			return fmt.Errorf("init audio: %w", err)
		}
		// Release the device even if playback panics
		defer recovery.HandlePanicFunc(func() { _ = beeper.Close() })
		defer beeper.Close()

		profile := transcoder.Profile()
		timing := audio.Timing{
			On:        profile.SignalOn,
			Off:       profile.SignalOff,
			Tick:      profile.BeepTick,
			Frequency: profile.BeepFrequency,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := beeper.Play(ctx, sig, timing); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("play signal: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
