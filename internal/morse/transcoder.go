// internal/morse/transcoder.go
// Package morse converts between the three written forms of Morse code:
// plain text, code strings made of dots and dashes, and signal strings
// made of on/off ticks.
package morse

import (
	"errors"
	"maps"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrNotSignal indicates the input does not read as a signal string
	ErrNotSignal = errors.New("input is not a signal string")
)

// Representation classifies a string as one of the three forms a
// Transcoder works with.
type Representation int

const (
	// Text is human-readable text.
	Text Representation = iota
	// Code is a string of dots and dashes.
	Code
	// Signal is a string of on/off ticks.
	Signal
)

// String returns the lower-case name of the representation.
func (r Representation) String() string {
	switch r {
	case Code:
		return "code"
	case Signal:
		return "signal"
	default:
		return "text"
	}
}

// state is an immutable snapshot of a profile and the tables derived from
// it. Mutators build a fresh state and swap it in; an operation loads the
// pointer once and can never observe a half-rebuilt table.
type state struct {
	profile  Profile
	encoding map[string]string
	decoding map[string]string
}

func newState(p Profile) *state {
	enc, dec := buildTables(p)
	return &state{profile: p, encoding: enc, decoding: dec}
}

// Transcoder converts strings between text, code and signal form under a
// fixed Profile. Conversions are safe for concurrent use; the setters
// rebuild the table snapshot atomically.
type Transcoder struct {
	mu    sync.Mutex // serializes mutators
	state atomic.Pointer[state]
}

// NewTranscoder validates p and returns a Transcoder for it. On a
// validation error no Transcoder is created.
func NewTranscoder(p Profile) (*Transcoder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	t := &Transcoder{}
	t.state.Store(newState(p))
	return t, nil
}

// Classify reports how s reads: the set of its distinct non-whitespace
// symbols decides. Exactly {dot, dash} is Code, exactly {signal-on,
// signal-off} is Signal, everything else (including empty, blank and
// single-symbol strings) is Text.
func (t *Transcoder) Classify(s string) Representation {
	return t.state.Load().classify(s)
}

// Encode converts s to a code string. Signal input is translated back to
// code, code input is returned unchanged. Text characters missing from
// the encoding table are skipped.
func (t *Transcoder) Encode(s string) string {
	return t.state.Load().toCode(s)
}

// Signal converts s to a signal string of on/off ticks. Text input is
// encoded first, signal input is returned unchanged. Paragraph breaks
// flatten to word gaps; a signal string is always a single line.
func (t *Transcoder) Signal(s string) string {
	st := t.state.Load()
	switch st.classify(s) {
	case Text:
		return st.signal(st.encode(s))
	case Signal:
		return s
	default:
		return st.signal(s)
	}
}

// FromSignal converts a signal string back to a code string. It returns
// ErrNotSignal when s does not classify as signal. An on-run of exactly
// one dot length reads as a dot; any other on-run reads as a dash.
func (t *Transcoder) FromSignal(s string) (string, error) {
	st := t.state.Load()
	if st.classify(s) != Signal {
		return "", ErrNotSignal
	}
	return st.fromSignal(s), nil
}

// Decode converts s to readable text. Signal input is translated to code
// first, text input is returned unchanged. Unrecognized code groups decode
// to the profile's unknown glyph, and the result is sentence-cased: first
// character upper, the rest lower.
func (t *Transcoder) Decode(s string) string {
	st := t.state.Load()
	switch st.classify(s) {
	case Signal:
		return st.decode(st.fromSignal(s))
	case Text:
		return s
	default:
		return st.decode(s)
	}
}

// TokenList converts s to code and splits it into words, each word a slice
// of per-character code tokens. Paragraph breaks flatten to word gaps;
// bit gaps stay inside their tokens.
func (t *Transcoder) TokenList(s string) [][]string {
	st := t.state.Load()
	code := strings.ReplaceAll(st.toCode(s), "\n", st.profile.WordGap)

	var words [][]string
	for _, word := range splitNonEmpty(code, st.profile.WordGap) {
		words = append(words, splitNonEmpty(word, st.profile.CharacterGap))
	}
	return words
}

// Profile returns the active profile.
func (t *Transcoder) Profile() Profile {
	return t.state.Load().profile
}

// EncodingTable returns a copy of the active character-to-code table.
func (t *Transcoder) EncodingTable() map[string]string {
	return maps.Clone(t.state.Load().encoding)
}

// DecodingTable returns a copy of the active code-to-character table.
func (t *Transcoder) DecodingTable() map[string]string {
	return maps.Clone(t.state.Load().decoding)
}

// IncludePunctuation reports whether the punctuation table is merged in.
func (t *Transcoder) IncludePunctuation() bool {
	return t.state.Load().profile.IncludePunctuation
}

// SetIncludePunctuation rebuilds the tables with or without the
// punctuation layer.
func (t *Transcoder) SetIncludePunctuation(include bool) {
	t.mutate(func(p *Profile) { p.IncludePunctuation = include })
}

// IncludeNonLatin reports whether the non-Latin letter table is merged in.
func (t *Transcoder) IncludeNonLatin() bool {
	return t.state.Load().profile.IncludeNonLatin
}

// SetIncludeNonLatin rebuilds the tables with or without the non-Latin
// letter layer.
func (t *Transcoder) SetIncludeNonLatin(include bool) {
	t.mutate(func(p *Profile) { p.IncludeNonLatin = include })
}

// IncludeProsigns reports whether prosigns take part in decoding.
func (t *Transcoder) IncludeProsigns() bool {
	return t.state.Load().profile.IncludeProsigns
}

// SetIncludeProsigns rebuilds the decoding table with or without the
// prosign layer.
func (t *Transcoder) SetIncludeProsigns(include bool) {
	t.mutate(func(p *Profile) { p.IncludeProsigns = include })
}

// KeepParagraphs reports whether encoding preserves line breaks.
func (t *Transcoder) KeepParagraphs() bool {
	return t.state.Load().profile.KeepParagraphs
}

// SetKeepParagraphs switches between preserving line breaks in encoded
// output and flattening them to word gaps.
func (t *Transcoder) SetKeepParagraphs(keep bool) {
	t.mutate(func(p *Profile) { p.KeepParagraphs = keep })
}

// UnknownGlyph returns the replacement for unrecognized code groups.
func (t *Transcoder) UnknownGlyph() string {
	return t.state.Load().profile.UnknownGlyph
}

// SetUnknownGlyph sets the replacement for unrecognized code groups.
func (t *Transcoder) SetUnknownGlyph(glyph string) {
	t.mutate(func(p *Profile) { p.UnknownGlyph = glyph })
}

// mutate applies change to a copy of the profile and swaps in a state
// built from it. Readers keep working against the old snapshot until the
// swap.
func (t *Transcoder) mutate(change func(p *Profile)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.state.Load().profile
	change(&p)
	t.state.Store(newState(p))
}

// classify implements Classify against one snapshot.
func (st *state) classify(s string) Representation {
	distinct := make(map[rune]bool)
	for _, r := range s {
		if !unicode.IsSpace(r) {
			distinct[r] = true
		}
	}
	p := st.profile
	switch {
	case len(distinct) == 2 && distinct[p.Dot] && distinct[p.Dash]:
		return Code
	case len(distinct) == 2 && distinct[p.SignalOn] && distinct[p.SignalOff]:
		return Signal
	default:
		return Text
	}
}

// toCode brings any input to code form: signal is translated back, code
// passes through, text is encoded.
func (st *state) toCode(s string) string {
	switch st.classify(s) {
	case Signal:
		return st.fromSignal(s)
	case Code:
		return s
	default:
		return st.encode(s)
	}
}

// encode turns text into a code string. The output is assembled as a flat
// list of fragments where every character and word appends its trailing
// separator and the separator is popped again once the group closes; that
// keeps empty groups (blank lines, words with no encodable characters)
// from leaving stray gaps behind.
func (st *state) encode(text string) string {
	p := st.profile

	var line []string
	for _, paragraph := range splitLines(strings.TrimSpace(text)) {
		for _, word := range strings.Fields(strings.ToUpper(paragraph)) {
			for _, character := range word {
				code, ok := st.encoding[string(character)]
				if !ok {
					continue // not encodable, dropped
				}
				if p.BitGap != "" {
					for _, symbol := range code {
						line = append(line, string(symbol), p.BitGap)
					}
					line = popLast(line)
				} else {
					line = append(line, code)
				}
				line = append(line, p.CharacterGap)
			}
			line = popLast(line)
			line = append(line, p.WordGap)
		}
		line = popLast(line)
		if p.KeepParagraphs {
			line = append(line, "\n")
		} else {
			line = append(line, p.WordGap)
		}
	}
	line = popLast(line)
	return strings.Join(line, "")
}

// signal turns a code string into on/off ticks.
func (st *state) signal(code string) string {
	p := st.profile

	// a signal string has no line structure
	code = strings.ReplaceAll(code, "\n", p.WordGap)

	dotRun := strings.Repeat(string(p.SignalOn), p.DotTiming)
	dashRun := strings.Repeat(string(p.SignalOn), p.DashTiming)
	bitPause := strings.Repeat(string(p.SignalOff), p.BitTiming)
	characterPause := strings.Repeat(string(p.SignalOff), p.CharacterTiming)
	wordPause := strings.Repeat(string(p.SignalOff), p.WordTiming)

	var line []string
	for _, word := range splitNonEmpty(code, p.WordGap) {
		for _, character := range splitNonEmpty(word, p.CharacterGap) {
			if p.BitGap != "" {
				character = strings.ReplaceAll(character, p.BitGap, "")
			}
			for _, symbol := range character {
				if symbol == p.Dot {
					line = append(line, dotRun)
				} else {
					line = append(line, dashRun)
				}
				line = append(line, bitPause)
			}
			line = popLast(line)
			line = append(line, characterPause)
		}
		line = popLast(line)
		line = append(line, wordPause)
	}
	line = popLast(line)
	return strings.Join(line, "")
}

// fromSignal turns a signal string back into code. Pauses split the
// signal into words, characters and symbol runs; a run of exactly one dot
// length is a dot and every other run is a dash, so over- or under-keyed
// marks all land on dash.
func (st *state) fromSignal(signal string) string {
	p := st.profile

	dotRun := strings.Repeat(string(p.SignalOn), p.DotTiming)
	bitPause := strings.Repeat(string(p.SignalOff), p.BitTiming)
	characterPause := strings.Repeat(string(p.SignalOff), p.CharacterTiming)
	wordPause := strings.Repeat(string(p.SignalOff), p.WordTiming)

	var line []string
	for _, word := range splitNonEmpty(signal, wordPause) {
		for _, character := range splitNonEmpty(word, characterPause) {
			for _, run := range splitNonEmpty(character, bitPause) {
				if run == dotRun {
					line = append(line, string(p.Dot))
				} else {
					line = append(line, string(p.Dash))
				}
				line = append(line, p.BitGap)
			}
			line = popLast(line)
			line = append(line, p.CharacterGap)
		}
		line = popLast(line)
		line = append(line, p.WordGap)
	}
	line = popLast(line)
	return strings.Join(line, "")
}

// decode turns a code string into readable text. Words join with single
// spaces and paragraphs with single line breaks regardless of the
// profile's gap strings; the final pass sentence-cases the result.
func (st *state) decode(code string) string {
	p := st.profile

	var line []string
	for _, paragraph := range splitLines(strings.TrimSpace(code)) {
		for _, word := range splitNonEmpty(paragraph, p.WordGap) {
			for _, character := range splitNonEmpty(word, p.CharacterGap) {
				if p.BitGap != "" {
					character = strings.ReplaceAll(character, p.BitGap, "")
				}
				symbol, ok := st.decoding[character]
				if !ok {
					symbol = p.UnknownGlyph
				}
				line = append(line, symbol)
			}
			line = append(line, " ")
		}
		line = popLast(line)
		line = append(line, "\n")
	}
	line = popLast(line)
	return capitalize(strings.Join(line, ""))
}

// splitLines splits s on line breaks after normalizing CR and CRLF.
// An empty string yields no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// splitNonEmpty splits s on sep and drops empty parts.
func splitNonEmpty(s, sep string) []string {
	var parts []string
	for _, part := range strings.Split(s, sep) {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// popLast removes the trailing fragment, usually a separator appended one
// time too many.
func popLast(line []string) []string {
	if len(line) > 0 {
		line = line[:len(line)-1]
	}
	return line
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
