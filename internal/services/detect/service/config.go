package service

import (
	"fakenews/internal/core/artifact"
	"fakenews/internal/core/encode"
	"fakenews/internal/core/normalize"
	"fakenews/internal/services/detect/domain"
)

// Config selects the variant and the artifacts behind it
type Config struct {
	Variant string

	ArtifactDir   string // relative refs resolve against it
	ModelRef      string
	TokenizerRef  string // sequence only
	VectorizerRef string // tfidf only

	MaxLen     int
	Padding    string
	Truncating string
	Threshold  float64 // 0 keeps the artifact's own

	MinInputLen  int // 0 disables the short input guard
	DropNewlines bool
	FoldMarks    bool

	CacheDir string            // on-disk cache for http(s) refs, empty disables
	S3       artifact.S3Config // used when a ref is s3://
}

// Default artifact names and limits
const (
	DefaultSequenceModel = "lstm_model.json"
	DefaultLinearModel   = "fake_news_model.json"
	DefaultTokenizer     = "tokenizer.json"
	DefaultVectorizer    = "tfidf_vectorizer.json"
	DefaultMaxLen        = 200
	DefaultShortInputLen = 10
)

// DefaultConfig returns the settings the artifacts were trained with for variant
func DefaultConfig(variant string) Config {
	c := Config{
		Variant:    variant,
		MaxLen:     DefaultMaxLen,
		Padding:    encode.Post,
		Truncating: encode.Post,
	}
	switch variant {
	case domain.VariantTFIDF:
		c.ModelRef = DefaultLinearModel
		c.VectorizerRef = DefaultVectorizer
		c.MinInputLen = DefaultShortInputLen
	default:
		c.Variant = domain.VariantSequence
		c.ModelRef = DefaultSequenceModel
		c.TokenizerRef = DefaultTokenizer
	}
	return c
}

// NormalizeOptions picks the cleaning preset for the variant and applies the toggles
func (c Config) NormalizeOptions() normalize.Options {
	opt := normalize.SequenceOptions()
	if c.Variant == domain.VariantTFIDF {
		opt = normalize.TermWeightOptions()
	}
	opt.DropNewlines = c.DropNewlines
	opt.FoldMarks = c.FoldMarks
	return opt
}
