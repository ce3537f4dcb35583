// internal/morse/tables.go

package morse

import "strings"

// tableEntry pairs a text symbol with its canonical code pattern.
// Patterns are written with '.' and '-' and rendered to the profile's
// dot/dash symbols when a table set is built.
type tableEntry struct {
	symbol  string
	pattern string
}

// The built-in tables are ordered slices, not maps: when several symbols
// share a pattern the entry merged last claims the decoding slot, and that
// order has to be stable. Layer order is non-Latin, punctuation, digits,
// letters (later layers win), with prosigns underneath everything.

var letterTable = []tableEntry{
	{"A", ".-"},
	{"B", "-..."},
	{"C", "-.-."},
	{"D", "-.."},
	{"E", "."},
	{"F", "..-."},
	{"G", "--."},
	{"H", "...."},
	{"I", ".."},
	{"J", ".---"},
	{"K", "-.-"},
	{"L", ".-.."},
	{"M", "--"},
	{"N", "-."},
	{"O", "---"},
	{"P", ".--."},
	{"Q", "--.-"},
	{"R", ".-."},
	{"S", "..."},
	{"T", "-"},
	{"U", "..-"},
	{"V", "...-"},
	{"W", ".--"},
	{"X", "-..-"},
	{"Y", "-.--"},
	{"Z", "--.."},
}

var digitTable = []tableEntry{
	{"1", ".----"},
	{"2", "..---"},
	{"3", "...--"},
	{"4", "....-"},
	{"5", "....."},
	{"6", "-...."},
	{"7", "--..."},
	{"8", "---.."},
	{"9", "----."},
	{"0", "-----"},
}

var punctuationTable = []tableEntry{
	{".", ".-.-.-"},
	{",", "--..--"},
	{"?", "..--.."},
	{"`", ".----."},
	{"!", "-.-.--"},
	{"/", "-..-."},
	{"(", "-.--."},
	{")", "-.--.-"},
	{"&", ".-..."},
	{":", "---..."},
	{";", "-.-.-."},
	{"=", "-...-"},
	{"+", ".-.-."},
	{"-", "-....-"},
	{"_", "..--.-"},
	{"\"", ".-..-."},
	{"$", "...-..-"},
	{"@", ".--.-."},
}

// nonLatinTable covers accented letters and the CH digraph. CH is two
// characters long, so encoding (which walks text one character at a time)
// never reaches it; it only competes for the "----" decoding slot.
var nonLatinTable = []tableEntry{
	{"À", ".--.-"},
	{"Ä", ".-.-"},
	{"Å", ".--.-"},
	{"Ą", ".-.-"},
	{"Æ", ".-.-"},
	{"Ć", "-.-.."},
	{"Ĉ", "-.-.."},
	{"Ç", "-.-.."},
	{"CH", "----"},
	{"Đ", "..-.."},
	{"Ð", "..--."},
	{"É", "..-.."},
	{"È", ".-..-"},
	{"Ę", "..-.."},
	{"Ĝ", "--.-."},
	{"Ĥ", "----"},
	{"Ĵ", ".---."},
	{"Ł", ".-..-"},
	{"Ń", "--.--"},
	{"Ñ", "--.--"},
	{"Ó", "---."},
	{"Ö", "---."},
	{"Ø", "---."},
	{"Ś", "...-..."},
	{"Ŝ", "...-."},
	{"Š", "----"},
	{"Þ", ".--.."},
	{"Ü", "..--"},
	{"Ŭ", "..--"},
	{"Ź", "--..-."},
	{"Ż", "--..-"},
}

var prosignTable = []tableEntry{
	{"[End of work]", "...-.-"},
	{"[Error]", "........"},
	{"[General invitation to transmit]", "-.-"},
	{"[Starting signal]", "-.-.-"},
	{"[New message follows]", ".-.-."},
	{"[Verified]", "...-."},
	{"[Wait]", ".-..."},
}

// renderPattern maps a canonical '.'/'-' pattern to the profile's dot and
// dash symbols in a single pass, so swapped or overlapping symbol choices
// cannot alias each other.
func renderPattern(pattern string, p Profile) string {
	if p.Dot == '.' && p.Dash == '-' {
		return pattern
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.':
			return p.Dot
		case '-':
			return p.Dash
		default:
			return r
		}
	}, pattern)
}

// buildTables derives the encoding and decoding maps for p. Prosigns seed
// the decoding map first (when enabled) so any regular symbol sharing a
// pattern overrides them; the remaining layers merge in fixed order with
// later entries winning pattern collisions.
func buildTables(p Profile) (encoding, decoding map[string]string) {
	encoding = make(map[string]string)
	decoding = make(map[string]string)

	if p.IncludeProsigns {
		for _, e := range prosignTable {
			decoding[renderPattern(e.pattern, p)] = e.symbol
		}
	}

	layers := make([][]tableEntry, 0, 4)
	if p.IncludeNonLatin {
		layers = append(layers, nonLatinTable)
	}
	if p.IncludePunctuation {
		layers = append(layers, punctuationTable)
	}
	layers = append(layers, digitTable, letterTable)

	for _, layer := range layers {
		for _, e := range layer {
			code := renderPattern(e.pattern, p)
			encoding[e.symbol] = code
			decoding[code] = e.symbol
		}
	}
	return encoding, decoding
}
