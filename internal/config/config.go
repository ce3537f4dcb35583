// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/ColonelBlimp/morsecoder/internal/morse"
)

const (
	AppName       = "morsecoder"
	ConfigType    = "yaml"
	DefaultConfig = `# Morse Coder Configuration

# Code symbols
dot: "."            # symbol for a short mark
dash: "-"           # symbol for a long mark
bit_gap: ""         # separator between marks inside a character (usually empty)
character_gap: " "  # separator between characters
word_gap: "   "     # separator between words

# Signal symbols
signal_on: "█"      # mark symbol in signal strings
signal_off: "_"     # pause symbol in signal strings

# Signal timing in ticks (ITU ratios 1:3:1:3:7)
dot_timing: 1       # length of a dot
dash_timing: 3      # length of a dash
bit_timing: 1       # pause between marks inside a character
character_timing: 3 # pause between characters
word_timing: 7      # pause between words

# Code tables
include_punctuation: true # encode/decode punctuation marks
include_non_latin: true   # encode/decode accented letters
include_prosigns: true    # decode procedural signals such as [Error]
keep_paragraphs: true     # keep line breaks of the source text in encoded output
unknown_glyph: "�"        # printed for unrecognized code groups

# Playback
beep_frequency: 880 # sidetone pitch in Hz
beep_tick: 200ms    # real-time length of one signal tick
device_index: -1    # -1 for default output device
sample_rate: 48000  # playback sample rate in Hz
channels: 1         # number of channels (1=mono)
buffer_size: 1024   # playback buffer size in frames

# Output
debug: false        # print classification diagnostics to stderr
`
)

// Settings holds all application configuration
type Settings struct {
	// Code symbols
	Dot          string `mapstructure:"dot"`
	Dash         string `mapstructure:"dash"`
	BitGap       string `mapstructure:"bit_gap"`
	CharacterGap string `mapstructure:"character_gap"`
	WordGap      string `mapstructure:"word_gap"`

	// Signal symbols and timing
	SignalOn        string `mapstructure:"signal_on"`
	SignalOff       string `mapstructure:"signal_off"`
	DotTiming       int    `mapstructure:"dot_timing"`
	DashTiming      int    `mapstructure:"dash_timing"`
	BitTiming       int    `mapstructure:"bit_timing"`
	CharacterTiming int    `mapstructure:"character_timing"`
	WordTiming      int    `mapstructure:"word_timing"`

	// Code tables
	IncludePunctuation bool   `mapstructure:"include_punctuation"`
	IncludeNonLatin    bool   `mapstructure:"include_non_latin"`
	IncludeProsigns    bool   `mapstructure:"include_prosigns"`
	KeepParagraphs     bool   `mapstructure:"keep_paragraphs"`
	UnknownGlyph       string `mapstructure:"unknown_glyph"`

	// Playback
	BeepFrequency float64       `mapstructure:"beep_frequency"`
	BeepTick      time.Duration `mapstructure:"beep_tick"`
	DeviceIndex   int           `mapstructure:"device_index"`
	SampleRate    float64       `mapstructure:"sample_rate"`
	Channels      int           `mapstructure:"channels"`
	BufferSize    int           `mapstructure:"buffer_size"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/morsecoder/
func Init() error {
	// Set defaults
	viper.SetDefault("dot", ".")
	viper.SetDefault("dash", "-")
	viper.SetDefault("bit_gap", "")
	viper.SetDefault("character_gap", " ")
	viper.SetDefault("word_gap", "   ")
	viper.SetDefault("signal_on", "█")
	viper.SetDefault("signal_off", "_")
	viper.SetDefault("dot_timing", morse.DefaultDotTiming)
	viper.SetDefault("dash_timing", morse.DefaultDashTiming)
	viper.SetDefault("bit_timing", morse.DefaultBitTiming)
	viper.SetDefault("character_timing", morse.DefaultCharacterTiming)
	viper.SetDefault("word_timing", morse.DefaultWordTiming)
	viper.SetDefault("include_punctuation", true)
	viper.SetDefault("include_non_latin", true)
	viper.SetDefault("include_prosigns", true)
	viper.SetDefault("keep_paragraphs", true)
	viper.SetDefault("unknown_glyph", morse.DefaultUnknownGlyph)
	viper.SetDefault("beep_frequency", morse.DefaultBeepFrequency)
	viper.SetDefault("beep_tick", morse.DefaultBeepTick)
	viper.SetDefault("device_index", -1)
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("channels", 1)
	viper.SetDefault("buffer_size", 1024)
	viper.SetDefault("debug", false)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/morsecoder/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Code symbols
	if utf8.RuneCountInString(s.Dot) != 1 {
		errs = append(errs, fmt.Errorf("dot must be a single character, got %q", s.Dot))
	}
	if utf8.RuneCountInString(s.Dash) != 1 {
		errs = append(errs, fmt.Errorf("dash must be a single character, got %q", s.Dash))
	}
	if s.Dot != "" && s.Dot == s.Dash {
		errs = append(errs, fmt.Errorf("dot and dash must be different, both are %q", s.Dot))
	}
	if s.CharacterGap == "" {
		errs = append(errs, errors.New("character_gap must not be empty"))
	}
	if s.WordGap == "" {
		errs = append(errs, errors.New("word_gap must not be empty"))
	}

	// Signal symbols
	if utf8.RuneCountInString(s.SignalOn) != 1 {
		errs = append(errs, fmt.Errorf("signal_on must be a single character, got %q", s.SignalOn))
	}
	if utf8.RuneCountInString(s.SignalOff) != 1 {
		errs = append(errs, fmt.Errorf("signal_off must be a single character, got %q", s.SignalOff))
	}
	if s.SignalOn != "" && s.SignalOn == s.SignalOff {
		errs = append(errs, fmt.Errorf("signal_on and signal_off must be different, both are %q", s.SignalOn))
	}

	// Signal timing
	if s.DotTiming < 1 {
		errs = append(errs, fmt.Errorf("dot_timing must be at least 1 tick, got %d", s.DotTiming))
	}
	if s.DashTiming <= s.DotTiming {
		errs = append(errs, fmt.Errorf("dash_timing must be greater than dot_timing, got %d", s.DashTiming))
	}
	if s.BitTiming < 1 {
		errs = append(errs, fmt.Errorf("bit_timing must be at least 1 tick, got %d", s.BitTiming))
	}
	if s.CharacterTiming <= s.BitTiming {
		errs = append(errs, fmt.Errorf("character_timing must be greater than bit_timing, got %d", s.CharacterTiming))
	}
	if s.WordTiming <= s.CharacterTiming {
		errs = append(errs, fmt.Errorf("word_timing must be greater than character_timing, got %d", s.WordTiming))
	}

	// Playback
	if s.BeepFrequency < 20 || s.BeepFrequency > 20000 {
		errs = append(errs, fmt.Errorf("beep_frequency must be between 20 and 20000 Hz, got %v", s.BeepFrequency))
	}
	if s.BeepTick < 10*time.Millisecond || s.BeepTick > 5*time.Second {
		errs = append(errs, fmt.Errorf("beep_tick must be between 10ms and 5s, got %v", s.BeepTick))
	}
	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample_rate must be between 8000 and 192000 Hz, got %v", s.SampleRate))
	}
	if s.Channels < 1 || s.Channels > 2 {
		errs = append(errs, fmt.Errorf("channels must be 1 or 2, got %d", s.Channels))
	}
	if s.BufferSize < 64 || s.BufferSize > 8192 {
		errs = append(errs, fmt.Errorf("buffer_size must be between 64 and 8192, got %d", s.BufferSize))
	}
	// Buffer size should be a power of 2 to keep device period sizes clean
	if s.BufferSize&(s.BufferSize-1) != 0 {
		errs = append(errs, fmt.Errorf("buffer_size should be a power of 2, got %d", s.BufferSize))
	}

	// Nyquist check: the sidetone must be representable at the sample rate
	if s.BeepFrequency >= s.SampleRate/2 {
		errs = append(errs, fmt.Errorf("beep_frequency (%v Hz) must be less than Nyquist frequency (%v Hz)", s.BeepFrequency, s.SampleRate/2))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Profile converts the settings to a transcoder profile. It assumes
// Validate passed; the single-character symbol fields collapse to their
// first rune.
func (s *Settings) Profile() morse.Profile {
	return morse.Profile{
		Dot:                firstRune(s.Dot),
		Dash:               firstRune(s.Dash),
		BitGap:             s.BitGap,
		CharacterGap:       s.CharacterGap,
		WordGap:            s.WordGap,
		SignalOn:           firstRune(s.SignalOn),
		SignalOff:          firstRune(s.SignalOff),
		DotTiming:          s.DotTiming,
		DashTiming:         s.DashTiming,
		BitTiming:          s.BitTiming,
		CharacterTiming:    s.CharacterTiming,
		WordTiming:         s.WordTiming,
		UnknownGlyph:       s.UnknownGlyph,
		KeepParagraphs:     s.KeepParagraphs,
		IncludePunctuation: s.IncludePunctuation,
		IncludeNonLatin:    s.IncludeNonLatin,
		IncludeProsigns:    s.IncludeProsigns,
		BeepFrequency:      s.BeepFrequency,
		BeepTick:           s.BeepTick,
	}
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
