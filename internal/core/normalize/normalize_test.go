package normalize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencePreset_Table(t *testing.T) {
	n := New(SequenceOptions())

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"headline", "U.S. STOCKS rally!!", "us stocks rally"},
		{"stopwords dropped", "The truth is out there", "truth"},
		{"digits kept", "Top 10 reasons in 2024", "top 10 reasons 2024"},
		{"non ascii letters stripped", "Caf\u00e9 r\u00e9sum\u00e9", "caf rsum"},
		{"newlines collapse", "fake\nnews\r\n\tagain", "fake news"},
		{"whitespace trimmed", "   breaking   news  ", "breaking news"},
		{"single letters kept", "x marks spot", "x marks spot"},
		{"empty", "", ""},
		{"invalid utf8 dropped", string([]byte{0xff, 'o', 'k', 0x80}), "ok"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, n.Normalize(tc.in))
		})
	}
}

func TestTermWeightPreset_Table(t *testing.T) {
	n := New(TermWeightOptions())

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"headline", "U.S. STOCKS rally!!", "us stock ralli"},
		{"short tokens dropped", "b cc dd", "cc dd"},
		{"unicode punctuation becomes space", "hello\u2014world", "hello world"},
		{"combining marks split words", "cafe\u0301s", "cafe"},
		{"apostrophes deleted", "Scientists don't agree", "scientist dont agre"},
		{"stemming", "Aliens DISCOVERED hiding", "alien discov hide"},
		{"underscore is punctuation", "snake_case", "snakecas"},
		{"irregular stems", "Fake news spreads lies", "fake news spread lie"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, n.Normalize(tc.in))
		})
	}
}

func TestNormalize_StocksRallyContract(t *testing.T) {
	for _, opt := range []Options{SequenceOptions(), TermWeightOptions()} {
		toks := New(opt).Tokens("U.S. STOCKS rally!! The end")
		joined := strings.Join(toks, " ")
		assert.NotContains(t, toks, "the")
		assert.Equal(t, strings.ToLower(joined), joined)
		assert.NotContains(t, joined, ".")
		assert.NotContains(t, joined, "!")
	}
	toks := New(SequenceOptions()).Tokens("U.S. STOCKS rally!! The end")
	assert.Contains(t, toks, "stocks")
	assert.Contains(t, toks, "rally")
}

func TestNormalize_OnlyStopwordsAndPunctuationIsEmpty(t *testing.T) {
	inputs := []string{
		"The, and... OF it!!",
		"?!?! ... ---",
		"Are you there? It is what it is.",
		"   ",
	}
	for _, opt := range []Options{SequenceOptions(), TermWeightOptions()} {
		n := New(opt)
		for _, in := range inputs {
			assert.Equal(t, "", n.Normalize(in), "input %q", in)
			assert.Nil(t, n.Tokens(in))
		}
	}
}

func TestNormalize_DeterministicAndIdempotent(t *testing.T) {
	inputs := []string{
		"ALIENS DISCOVERED on Mars, Government is HIDING the truth!",
		"Scientists confirm that drinking water is essential for human survival.",
		"U.S. STOCKS rally!!",
		"line one\nline two\n\nline three",
		"Mixed 123 numbers and $ymbols #hashtag @mention",
	}
	seq := New(SequenceOptions())
	for _, in := range inputs {
		once := seq.Normalize(in)
		require.Equal(t, once, seq.Normalize(in), "deterministic for %q", in)
		assert.Equal(t, once, seq.Normalize(once), "idempotent for %q", in)
	}

	// stemming is not idempotent, but the pipeline is still a pure function
	tw := New(TermWeightOptions())
	for _, in := range inputs {
		assert.Equal(t, tw.Normalize(in), tw.Normalize(in))
	}
}

func TestNormalize_DropNewlines(t *testing.T) {
	opt := SequenceOptions()
	opt.DropNewlines = true
	assert.Equal(t, "fakenews today", New(opt).Normalize("fake\nnews today"))
	assert.Equal(t, "fake news today", New(SequenceOptions()).Normalize("fake\nnews today"))
}

func TestNormalize_FoldMarks(t *testing.T) {
	opt := SequenceOptions()
	opt.FoldMarks = true
	n := New(opt)
	assert.Equal(t, "cafe resume", n.Normalize("Caf\u00e9 r\u00e9sum\u00e9"))
	assert.Equal(t, "office", n.Normalize("o\ufb03ce"))
	assert.True(t, n.Options().FoldMarks)
}

func TestNormalize_NoOptionsOnlySplitsAndJoins(t *testing.T) {
	n := New(Options{})
	assert.Equal(t, "The U.S. is here!", n.Normalize("  The   U.S.\nis here!  "))
}

func TestStopwords(t *testing.T) {
	words := Stopwords()
	assert.Len(t, words, 179)
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("wouldn't"))
	assert.False(t, IsStopword("The"))
	assert.False(t, IsStopword("news"))
	assert.IsIncreasing(t, words)
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"stocks":     "stock",
		"rally":      "ralli",
		"government": "govern",
		"caresses":   "caress",
		"ponies":     "poni",
		"is":         "is",
		"a":          "a",
		"news":       "news",
		"skies":      "sky",
		"sky":        "sky",
		"dying":      "die",
		"lying":      "lie",
		"tying":      "tie",
		"innings":    "inning",
		"succeed":    "succeed",
		"lies":       "lie",
		"dies":       "die",
		"died":       "die",
		"ties":       "tie",
	}
	for in, want := range cases {
		assert.Equal(t, want, Stem(in), "Stem(%q)", in)
	}
}

type label struct{}

func (label) String() string { return "Stringer Value" }

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "hi", "hi"},
		{"bytes", []byte("raw"), "raw"},
		{"bool", true, "true"},
		{"whole float", float64(42), "42"},
		{"fraction", 3.5, "3.5"},
		{"float32", float32(0.25), "0.25"},
		{"int", 7, "7"},
		{"int64", int64(-9), "-9"},
		{"json number", json.Number("1e3"), "1e3"},
		{"raw string", json.RawMessage(`"quoted"`), "quoted"},
		{"raw null", json.RawMessage(`null`), ""},
		{"raw object", json.RawMessage(`{"a": 1}`), `{"a":1}`},
		{"raw invalid", json.RawMessage(`{bad`), "{bad"},
		{"stringer", label{}, "Stringer Value"},
		{"map", map[string]any{"a": 1}, `{"a":1}`},
		{"slice", []any{"x", 2}, `["x",2]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Coerce(tc.in))
		})
	}
}

func TestNormalizeAny(t *testing.T) {
	n := New(SequenceOptions())
	assert.Equal(t, "12345", n.NormalizeAny(float64(12345)))
	assert.Equal(t, "", n.NormalizeAny(nil))
	assert.Equal(t, "true", n.NormalizeAny(true))
}
