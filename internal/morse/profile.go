// internal/morse/profile.go

package morse

import (
	"errors"
	"strings"
	"time"
)

// Default timing values in ticks (ITU standard ratios)
// A dot is the base unit; every other duration is a multiple of it.
const (
	// DefaultDotTiming is the duration of a dot
	DefaultDotTiming = 1
	// DefaultDashTiming is the duration of a dash (ITU: 3:1)
	DefaultDashTiming = 3
	// DefaultBitTiming is the pause between symbols within a character (ITU: 1:1)
	DefaultBitTiming = 1
	// DefaultCharacterTiming is the pause between characters (ITU: 3:1)
	DefaultCharacterTiming = 3
	// DefaultWordTiming is the pause between words (ITU: 7:1)
	DefaultWordTiming = 7
)

// Defaults for audible playback of signal strings
const (
	// DefaultBeepFrequency is the sidetone pitch in Hz
	DefaultBeepFrequency = 880.0
	// DefaultBeepTick is the real-time length of one signal tick
	DefaultBeepTick = 200 * time.Millisecond
)

// DefaultUnknownGlyph is printed for code groups missing from the decoding table
const DefaultUnknownGlyph = "�" // U+FFFD

var (
	// ErrInvalidDot indicates the dot symbol is unset
	ErrInvalidDot = errors.New("dot symbol must be set")
	// ErrInvalidDash indicates the dash symbol is unset
	ErrInvalidDash = errors.New("dash symbol must be set")
	// ErrDotDashEqual indicates dot and dash must be distinguishable
	ErrDotDashEqual = errors.New("dot and dash symbols must be different")
	// ErrCharacterGapInBitGap indicates the character gap would be swallowed by the bit gap
	ErrCharacterGapInBitGap = errors.New("character gap must not be part of the bit gap")
	// ErrWordGapInBitGap indicates the word gap would be swallowed by the bit gap
	ErrWordGapInBitGap = errors.New("word gap must not be part of the bit gap")
	// ErrWordGapInCharacterGap indicates the word gap would be swallowed by the character gap
	ErrWordGapInCharacterGap = errors.New("word gap must not be part of the character gap")
	// ErrInvalidSignalOn indicates the signal-on symbol is unset
	ErrInvalidSignalOn = errors.New("signal-on symbol must be set")
	// ErrInvalidSignalOff indicates the signal-off symbol is unset
	ErrInvalidSignalOff = errors.New("signal-off symbol must be set")
	// ErrSignalSymbolsEqual indicates signal-on and signal-off must be distinguishable
	ErrSignalSymbolsEqual = errors.New("signal-on and signal-off symbols must be different")
	// ErrInvalidDotTiming indicates dot timing must be positive
	ErrInvalidDotTiming = errors.New("dot timing must be positive")
	// ErrInvalidDashTiming indicates dash timing must exceed dot timing
	ErrInvalidDashTiming = errors.New("dash timing must be longer than dot timing")
	// ErrInvalidBitTiming indicates bit timing must be positive
	ErrInvalidBitTiming = errors.New("bit timing must be positive")
	// ErrInvalidCharacterTiming indicates character timing must exceed bit timing
	ErrInvalidCharacterTiming = errors.New("character timing must be longer than bit timing")
	// ErrInvalidWordTiming indicates word timing must exceed character timing
	ErrInvalidWordTiming = errors.New("word timing must be longer than character timing")
	// ErrInvalidBeepFrequency indicates the playback frequency must be positive
	ErrInvalidBeepFrequency = errors.New("beep frequency must be positive")
	// ErrInvalidBeepTick indicates the playback tick duration must be positive
	ErrInvalidBeepTick = errors.New("beep tick must be positive")
)

// Profile holds the symbols, gaps, timings and table rules a Transcoder
// works with. All adjustable values come from the application config file.
type Profile struct {
	// Dot is the symbol for a short mark in code strings (from config: dot)
	Dot rune
	// Dash is the symbol for a long mark in code strings (from config: dash)
	Dash rune
	// BitGap separates the symbols of one encoded character (from config: bit_gap)
	// Conventionally empty: ".... ." carries no gap inside "....".
	BitGap string
	// CharacterGap separates encoded characters within a word (from config: character_gap)
	CharacterGap string
	// WordGap separates encoded words (from config: word_gap)
	WordGap string

	// SignalOn is the mark symbol of signal strings (from config: signal_on)
	SignalOn rune
	// SignalOff is the pause symbol of signal strings (from config: signal_off)
	SignalOff rune
	// DotTiming is the dot duration in ticks (from config: dot_timing)
	DotTiming int
	// DashTiming is the dash duration in ticks (from config: dash_timing)
	DashTiming int
	// BitTiming is the pause between symbols within a character in ticks (from config: bit_timing)
	BitTiming int
	// CharacterTiming is the pause between characters in ticks (from config: character_timing)
	CharacterTiming int
	// WordTiming is the pause between words in ticks (from config: word_timing)
	WordTiming int

	// UnknownGlyph is printed for code groups missing from the decoding table (from config: unknown_glyph)
	UnknownGlyph string
	// KeepParagraphs carries line breaks of the source text into encoded
	// output instead of flattening them to word gaps (from config: keep_paragraphs)
	KeepParagraphs bool
	// IncludePunctuation merges the punctuation table into the code tables (from config: include_punctuation)
	IncludePunctuation bool
	// IncludeNonLatin merges the non-Latin letter table into the code tables (from config: include_non_latin)
	IncludeNonLatin bool
	// IncludeProsigns merges procedural signals into the decoding table (from config: include_prosigns)
	IncludeProsigns bool

	// BeepFrequency is the sidetone pitch in Hz for audible playback (from config: beep_frequency)
	BeepFrequency float64
	// BeepTick is the real-time duration of one signal tick during playback (from config: beep_tick)
	BeepTick time.Duration
}

// DefaultProfile returns the conventional written form of Morse code:
// "."/"-" marks, single-space character gaps, triple-space word gaps,
// "█"/"_" signal symbols and ITU 1:3:1:3:7 timing.
func DefaultProfile() Profile {
	return Profile{
		Dot:                '.',
		Dash:               '-',
		BitGap:             "",
		CharacterGap:       " ",
		WordGap:            "   ",
		SignalOn:           '█',
		SignalOff:          '_',
		DotTiming:          DefaultDotTiming,
		DashTiming:         DefaultDashTiming,
		BitTiming:          DefaultBitTiming,
		CharacterTiming:    DefaultCharacterTiming,
		WordTiming:         DefaultWordTiming,
		UnknownGlyph:       DefaultUnknownGlyph,
		KeepParagraphs:     true,
		IncludePunctuation: true,
		IncludeNonLatin:    true,
		IncludeProsigns:    true,
		BeepFrequency:      DefaultBeepFrequency,
		BeepTick:           DefaultBeepTick,
	}
}

// Validate checks the profile invariants. Checks run in a fixed order and
// the first violation wins, so a broken profile reports the same error
// every time.
//
// The gap checks use substring containment: a gap that appears inside a
// finer gap could never be split out again. A side effect is that empty
// character and word gaps are always rejected (the empty string is a
// substring of everything), while an empty bit gap is fine.
func (p Profile) Validate() error {
	if p.Dot == 0 {
		return ErrInvalidDot
	}
	if p.Dash == 0 {
		return ErrInvalidDash
	}
	if p.Dot == p.Dash {
		return ErrDotDashEqual
	}
	if strings.Contains(p.BitGap, p.CharacterGap) {
		return ErrCharacterGapInBitGap
	}
	if strings.Contains(p.BitGap, p.WordGap) {
		return ErrWordGapInBitGap
	}
	if strings.Contains(p.CharacterGap, p.WordGap) {
		return ErrWordGapInCharacterGap
	}
	if p.SignalOn == 0 {
		return ErrInvalidSignalOn
	}
	if p.SignalOff == 0 {
		return ErrInvalidSignalOff
	}
	if p.SignalOn == p.SignalOff {
		return ErrSignalSymbolsEqual
	}
	if p.DotTiming <= 0 {
		return ErrInvalidDotTiming
	}
	if p.DashTiming <= p.DotTiming {
		return ErrInvalidDashTiming
	}
	if p.BitTiming <= 0 {
		return ErrInvalidBitTiming
	}
	if p.CharacterTiming <= p.BitTiming {
		return ErrInvalidCharacterTiming
	}
	if p.WordTiming <= p.CharacterTiming {
		return ErrInvalidWordTiming
	}
	if p.BeepFrequency <= 0 {
		return ErrInvalidBeepFrequency
	}
	if p.BeepTick <= 0 {
		return ErrInvalidBeepTick
	}
	return nil
}
