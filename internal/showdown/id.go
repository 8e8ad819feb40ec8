package showdown

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	parenPattern    = regexp.MustCompile(`\(.*?\)`)
	movePunctuation = regexp.MustCompile("[\"'\\[\\]()\\-_`]")
	moveNonAlnum    = regexp.MustCompile(`[^a-z0-9\s]`)
)

// moveStripWords are qualifiers that appear on roster move labels but never in
// canonical move names ("Electro Shot (Singles)", "Tailwind Doubles").
var moveStripWords = map[string]struct{}{
	"singles": {},
	"doubles": {},
	"triples": {},
	"battle":  {},
	"mode":    {},
	"form":    {},
	"forms":   {},
}

// ToID converts a display string to a Showdown-style canonical token:
// Unicode compatibility decomposition, typographic apostrophes folded,
// non-ASCII stripped, everything but letters and digits removed, lowercased.
// It never fails; empty input yields an empty token.
func ToID(value string) string {
	decomposed := norm.NFKD.String(value)
	decomposed = strings.ReplaceAll(decomposed, "’", "'")

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// NormalizeMoveLabel produces the canonical token for a move label. Unlike
// ToID it strips parentheticals and bracket/quote/dash punctuation first and
// drops battle-mode qualifier words, so "Icy Wind (Doubles)" and "Icy Wind"
// normalize identically.
func NormalizeMoveLabel(label string) string {
	text := strings.ToLower(norm.NFKD.String(label))
	text = parenPattern.ReplaceAllString(text, " ")
	text = movePunctuation.ReplaceAllString(text, " ")
	text = moveNonAlnum.ReplaceAllString(text, " ")

	var b strings.Builder
	for _, token := range strings.Fields(text) {
		if _, skip := moveStripWords[token]; skip {
			continue
		}
		b.WriteString(token)
	}
	return b.String()
}
