// Package normalize provides the deterministic text cleaner shared by both inference variants.
// Pipeline order
// 1 optional mark folding (NFKD, drop combining marks)
// 2 lowercase
// 3 strip: non-alphanumerics (sequence) or punctuation then non-word runes (term-weight)
// 4 optional newline deletion
// 5 collapse whitespace to single spaces and trim
// 6 split, drop stopwords and short tokens
// 7 optional Porter stemming
// 8 join with single spaces
package normalize

import (
	"strings"
	"unicode"
)

// StripMode selects how step 3 removes characters
type StripMode uint8

const (
	// StripNone keeps every rune
	StripNone StripMode = iota
	// StripNonAlnum deletes every rune that is not ASCII [A-Za-z0-9] and not whitespace
	StripNonAlnum
	// StripPunct deletes ASCII punctuation, then turns remaining non-word runes into spaces
	StripPunct
)

// Options is the single configuration for both pipelines
type Options struct {
	Lowercase    bool
	Strip        StripMode
	DropNewlines bool
	FoldMarks    bool
	Stopwords    bool
	MinTokenLen  int // tokens with fewer runes are dropped, 0 disables
	Stem         bool
}

// SequenceOptions reproduces the cleaning used to train the sequence model
func SequenceOptions() Options {
	return Options{
		Lowercase: true,
		Strip:     StripNonAlnum,
		Stopwords: true,
	}
}

// TermWeightOptions reproduces the cleaning used to train the TF-IDF vectorizer
func TermWeightOptions() Options {
	return Options{
		Lowercase:   true,
		Strip:       StripPunct,
		Stopwords:   true,
		MinTokenLen: 2,
		Stem:        true,
	}
}

// Normalizer is immutable and safe for concurrent use
type Normalizer struct {
	opt Options
}

// New constructs a Normalizer for opt
func New(opt Options) *Normalizer { return &Normalizer{opt: opt} }

// Options returns the configuration the normalizer was built with
func (n *Normalizer) Options() Options { return n.opt }

// Normalize returns the cleaned form of s
func (n *Normalizer) Normalize(s string) string {
	return strings.Join(n.Tokens(s), " ")
}

// NormalizeAny coerces v to a string first, see Coerce
func (n *Normalizer) NormalizeAny(v any) string {
	return n.Normalize(Coerce(v))
}

// Tokens runs the pipeline and returns the surviving tokens in order
func (n *Normalizer) Tokens(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ToValidUTF8(s, "")
	if n.opt.FoldMarks {
		s = foldMarks(s)
	}
	if n.opt.Lowercase {
		s = strings.ToLower(s)
	}
	switch n.opt.Strip {
	case StripNonAlnum:
		s = stripNonAlnum(s)
	case StripPunct:
		s = stripPunct(s)
	}
	if n.opt.DropNewlines {
		s = strings.ReplaceAll(s, "\n", "")
	}

	// strings.Fields collapses whitespace runs and trims in one go
	fields := strings.Fields(s)
	out := fields[:0]
	for _, w := range fields {
		if n.opt.Stopwords && IsStopword(w) {
			continue
		}
		if n.opt.MinTokenLen > 0 && runeLen(w) < n.opt.MinTokenLen {
			continue
		}
		if n.opt.Stem {
			w = Stem(w)
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// asciiPunct mirrors the punctuation set of the training pipeline
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80 && strings.ContainsRune(asciiPunct, r):
			// deleted outright, so "u.s." becomes "us"
		case isWord(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// isWord matches a regex \w rune: letters, numbers and underscore. Combining marks are not word runes
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
