package encode

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strings"

	perr "fakenews/internal/platform/errors"

	"github.com/samber/lo"
)

// sklearnTokenPattern is the TfidfVectorizer default
const sklearnTokenPattern = `(?u)\b\w\w+\b`

// wordRuns matches the default pattern with Unicode word runes
var wordRuns = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Sparse is a term weight vector over a fixed vocabulary. Index is ascending
type Sparse struct {
	Dim   int
	Index []int
	Value []float64
}

// NNZ is the number of stored entries
func (s Sparse) NNZ() int { return len(s.Index) }

// Dense expands s into a Dim sized slice
func (s Sparse) Dense() []float64 {
	out := make([]float64, s.Dim)
	for k, i := range s.Index {
		out[i] = s.Value[k]
	}
	return out
}

// Dot returns s·w; w must be Dim wide
func (s Sparse) Dot(w []float64) float64 {
	var sum float64
	for k, i := range s.Index {
		sum += s.Value[k] * w[i]
	}
	return sum
}

// vectorizerJSON is the exported TfidfVectorizer state
type vectorizerJSON struct {
	Vocabulary   map[string]int  `json:"vocabulary"`
	IDF          []float64       `json:"idf"`
	Norm         json.RawMessage `json:"norm"`
	SublinearTF  bool            `json:"sublinear_tf"`
	UseIDF       *bool           `json:"use_idf"`
	Binary       bool            `json:"binary"`
	Lowercase    *bool           `json:"lowercase"`
	NgramRange   []int           `json:"ngram_range"`
	TokenPattern *string         `json:"token_pattern"`
}

// TFIDF reproduces TfidfVectorizer.transform for a single document
type TFIDF struct {
	vocab     map[string]int
	idf       []float64
	norm      string // l2, l1 or ""
	sublinear bool
	useIDF    bool
	binary    bool
	lowercase bool
	minN      int
	maxN      int
	pattern   *regexp.Regexp
}

// ParseTFIDF decodes an exported vectorizer and checks its internal consistency
func ParseTFIDF(b []byte) (*TFIDF, error) {
	var raw vectorizerJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArtifact, "decode vectorizer")
	}
	if len(raw.Vocabulary) == 0 {
		return nil, perr.Artifactf("vectorizer has an empty vocabulary")
	}
	v := &TFIDF{
		vocab:     raw.Vocabulary,
		idf:       raw.IDF,
		norm:      "l2",
		sublinear: raw.SublinearTF,
		useIDF:    raw.UseIDF == nil || *raw.UseIDF,
		binary:    raw.Binary,
		lowercase: raw.Lowercase == nil || *raw.Lowercase,
		minN:      1,
		maxN:      1,
		pattern:   wordRuns,
	}
	switch string(raw.Norm) {
	case "":
	case "null":
		v.norm = ""
	default:
		var n string
		if err := json.Unmarshal(raw.Norm, &n); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeArtifact, "decode norm")
		}
		v.norm = strings.ToLower(n)
	}
	switch v.norm {
	case "", "l1", "l2":
	default:
		return nil, perr.Artifactf("unsupported norm %q", v.norm)
	}
	if len(raw.NgramRange) == 2 {
		v.minN, v.maxN = raw.NgramRange[0], raw.NgramRange[1]
	}
	if v.minN < 1 || v.maxN < v.minN {
		return nil, perr.Artifactf("invalid ngram_range %v", raw.NgramRange)
	}
	if raw.TokenPattern != nil && *raw.TokenPattern != sklearnTokenPattern {
		re, err := regexp.Compile(unicodePattern(*raw.TokenPattern))
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeArtifact, "compile token_pattern")
		}
		v.pattern = re
	}
	if v.useIDF && len(v.idf) != len(v.vocab) {
		return nil, perr.Artifactf("idf has %d weights for %d terms", len(v.idf), len(v.vocab))
	}
	for term, i := range v.vocab {
		if i < 0 || i >= len(v.vocab) {
			return nil, perr.Artifactf("term %q has index %d outside [0,%d)", term, i, len(v.vocab))
		}
	}
	return v, nil
}

// Dim is the vocabulary size, the width of every vector
func (v *TFIDF) Dim() int { return len(v.vocab) }

// Terms analyzes text into the n-gram terms the vocabulary is keyed by
func (v *TFIDF) Terms(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	toks := v.pattern.FindAllString(text, -1)
	if v.minN == 1 && v.maxN == 1 {
		return toks
	}
	var out []string
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(toks); i++ {
			out = append(out, strings.Join(toks[i:i+n], " "))
		}
	}
	return out
}

// Transform returns the weighted, normalized vector. Terms outside the vocabulary contribute nothing
func (v *TFIDF) Transform(text string) Sparse {
	counts := map[int]float64{}
	for _, term := range v.Terms(text) {
		if i, ok := v.vocab[term]; ok {
			counts[i]++
		}
	}

	idx := lo.Keys(counts)
	sort.Ints(idx)
	vals := lo.Map(idx, func(i int, _ int) float64 {
		tf := counts[i]
		switch {
		case v.binary:
			tf = 1
		case v.sublinear:
			tf = 1 + math.Log(tf)
		}
		if v.useIDF {
			tf *= v.idf[i]
		}
		return tf
	})

	var norm float64
	switch v.norm {
	case "l2":
		norm = math.Sqrt(lo.SumBy(vals, func(x float64) float64 { return x * x }))
	case "l1":
		norm = lo.SumBy(vals, math.Abs)
	}
	if norm > 0 {
		for k := range vals {
			vals[k] /= norm
		}
	}
	return Sparse{Dim: len(v.vocab), Index: idx, Value: vals}
}

// unicodePattern rewrites a Python token pattern for RE2, whose \w, \d and \b are ASCII only.
// Word and digit classes become Unicode classes. \b is dropped: token patterns place it
// next to greedy word runs, which already end at a word boundary
func unicodePattern(p string) string {
	p = strings.TrimPrefix(p, "(?u)")
	var b strings.Builder
	inClass := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '\\' && i+1 < len(p):
			i++
			switch e := p[i]; {
			case e == 'w' && inClass:
				b.WriteString(`\p{L}\p{N}_`)
			case e == 'w':
				b.WriteString(`[\p{L}\p{N}_]`)
			case e == 'W' && !inClass:
				b.WriteString(`[^\p{L}\p{N}_]`)
			case e == 'd':
				b.WriteString(`\p{Nd}`)
			case e == 'D' && !inClass:
				b.WriteString(`\P{Nd}`)
			case e == 'b' && !inClass:
			default:
				b.WriteByte('\\')
				b.WriteByte(e)
			}
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			// a leading ] or ^] is literal
			if i+1 < len(p) && p[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(p) && p[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
