package normalize

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// irregularStems are whole words whose stem is fixed ahead of the Porter rules,
// matching the extended stemmer the term-weight vocabulary was fitted with
var irregularStems = map[string]string{
	"sky":      "sky",
	"skies":    "sky",
	"dying":    "die",
	"lying":    "lie",
	"tying":    "tie",
	"news":     "news",
	"innings":  "inning",
	"inning":   "inning",
	"outings":  "outing",
	"outing":   "outing",
	"cannings": "canning",
	"canning":  "canning",
	"howe":     "howe",
	"proceed":  "proceed",
	"exceed":   "exceed",
	"succeed":  "succeed",
}

// Stem returns the Porter stem of a lowercase token. Tokens of two runes or less are kept as-is
func Stem(w string) string {
	if s, ok := irregularStems[w]; ok {
		return s
	}
	if runeLen(w) <= 2 {
		return w
	}
	// four letter "-ies" and "-ied" words keep their "ie" (lies, dies, tied)
	if len(w) == 4 && (strings.HasSuffix(w, "ies") || strings.HasSuffix(w, "ied")) {
		w = w[:2] + "e"
	}
	return string(porterstemmer.StemWithoutLowerCasing([]rune(w)))
}
