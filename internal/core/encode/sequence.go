// Package encode turns cleaned text into the feature vectors the models consume
package encode

import (
	"encoding/json"
	"strings"

	perr "fakenews/internal/platform/errors"
)

// Padding and truncation sides
const (
	Post = "post"
	Pre  = "pre"
)

// kerasFilters is the Tokenizer default filter set
const kerasFilters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

// Tokenizer is the vocabulary half of a Keras Tokenizer.to_json export
type Tokenizer struct {
	Filters   string
	Lower     bool
	Split     string
	NumWords  int // 0 means unlimited
	OOVToken  string
	WordIndex map[string]int

	oovID int // 0 when the tokenizer has no OOV token
}

// tokenizerJSON mirrors the export; Keras stores word_index as a JSON encoded string
type tokenizerJSON struct {
	ClassName string `json:"class_name"`
	Config    struct {
		NumWords  *int            `json:"num_words"`
		Filters   *string         `json:"filters"`
		Lower     *bool           `json:"lower"`
		Split     *string         `json:"split"`
		CharLevel bool            `json:"char_level"`
		OOVToken  *string         `json:"oov_token"`
		WordIndex json.RawMessage `json:"word_index"`
	} `json:"config"`
}

// ParseTokenizer decodes a Keras tokenizer export
func ParseTokenizer(b []byte) (*Tokenizer, error) {
	var raw tokenizerJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArtifact, "decode tokenizer")
	}
	if raw.Config.CharLevel {
		return nil, perr.Artifactf("char level tokenizers are not supported")
	}
	wi, err := decodeWordIndex(raw.Config.WordIndex)
	if err != nil {
		return nil, err
	}
	if len(wi) == 0 {
		return nil, perr.Artifactf("tokenizer has an empty word_index")
	}

	t := &Tokenizer{
		Filters:   kerasFilters,
		Lower:     true,
		Split:     " ",
		WordIndex: wi,
	}
	if raw.Config.Filters != nil {
		t.Filters = *raw.Config.Filters
	}
	if raw.Config.Lower != nil {
		t.Lower = *raw.Config.Lower
	}
	if raw.Config.Split != nil && *raw.Config.Split != "" {
		t.Split = *raw.Config.Split
	}
	if raw.Config.NumWords != nil {
		t.NumWords = *raw.Config.NumWords
	}
	if raw.Config.OOVToken != nil {
		t.OOVToken = *raw.Config.OOVToken
		t.oovID = wi[t.OOVToken]
	}
	return t, nil
}

func decodeWordIndex(raw json.RawMessage) (map[string]int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, perr.Artifactf("tokenizer is missing word_index")
	}
	// either an object or a string holding one
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = json.RawMessage(s)
	}
	var wi map[string]int
	if err := json.Unmarshal(raw, &wi); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArtifact, "decode word_index")
	}
	return wi, nil
}

// Words splits text the way Keras text_to_word_sequence does with this tokenizer's settings
func (t *Tokenizer) Words(text string) []string {
	if t.Lower {
		text = strings.ToLower(text)
	}
	if t.Filters != "" {
		text = replaceFilters(text, t.Filters, t.Split)
	}
	parts := strings.Split(text, t.Split)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// replaceFilters maps every filter rune to the split string
func replaceFilters(text, filters, split string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(filters, r) {
			b.WriteString(split)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IDs maps words to vocabulary ids. Unknown or out of range words map to the OOV id
// when the tokenizer has one and are dropped otherwise
func (t *Tokenizer) IDs(words []string) []int {
	out := make([]int, 0, len(words))
	for _, w := range words {
		id, ok := t.WordIndex[w]
		switch {
		case ok && (t.NumWords == 0 || id < t.NumWords):
			out = append(out, id)
		case t.oovID > 0:
			out = append(out, t.oovID)
		}
	}
	return out
}

// OOVID returns the id used for unknown words, 0 when there is none
func (t *Tokenizer) OOVID() int { return t.oovID }

// SequenceOptions fixes the output shape of a Sequencer
type SequenceOptions struct {
	MaxLen     int
	Padding    string // post (default) or pre
	Truncating string // post (default) or pre
}

// Sequencer encodes cleaned text into fixed length id sequences
type Sequencer struct {
	tok *Tokenizer
	opt SequenceOptions
}

// NewSequencer validates opt and binds it to tok
func NewSequencer(tok *Tokenizer, opt SequenceOptions) (*Sequencer, error) {
	if tok == nil {
		return nil, perr.Artifactf("sequencer needs a tokenizer")
	}
	if opt.MaxLen <= 0 {
		return nil, perr.Artifactf("max length must be positive, got %d", opt.MaxLen)
	}
	var err error
	if opt.Padding, err = side(opt.Padding, "padding"); err != nil {
		return nil, err
	}
	if opt.Truncating, err = side(opt.Truncating, "truncating"); err != nil {
		return nil, err
	}
	return &Sequencer{tok: tok, opt: opt}, nil
}

func side(v, what string) (string, error) {
	switch strings.ToLower(v) {
	case "", Post:
		return Post, nil
	case Pre:
		return Pre, nil
	}
	return "", perr.Artifactf("%s must be %q or %q, got %q", what, Pre, Post, v)
}

// Encode returns exactly MaxLen ids, 0 filled
func (s *Sequencer) Encode(text string) []int {
	return Pad(s.tok.IDs(s.tok.Words(text)), s.opt.MaxLen, s.opt.Padding, s.opt.Truncating)
}

// MaxLen is the fixed output length
func (s *Sequencer) MaxLen() int { return s.opt.MaxLen }

// Options returns the effective options
func (s *Sequencer) Options() SequenceOptions { return s.opt }

// VocabSize is the number of usable ids including the reserved 0
func (s *Sequencer) VocabSize() int {
	if s.tok.NumWords > 0 && s.tok.NumWords <= len(s.tok.WordIndex) {
		return s.tok.NumWords
	}
	return len(s.tok.WordIndex) + 1
}

// Pad fixes ids to n entries like Keras pad_sequences with value 0
func Pad(ids []int, n int, padding, truncating string) []int {
	if len(ids) > n {
		if truncating == Pre {
			ids = ids[len(ids)-n:]
		} else {
			ids = ids[:n]
		}
	}
	out := make([]int, n)
	if padding == Pre {
		copy(out[n-len(ids):], ids)
	} else {
		copy(out, ids)
	}
	return out
}
