// Package domain defines the request, response and port types of the detect service
package domain

import (
	"bytes"
	"encoding/json"

	"fakenews/internal/core/normalize"
	perr "fakenews/internal/platform/errors"
)

// Variants select the pipeline and artifact set. They are never mixed
const (
	VariantSequence = "sequence"
	VariantTFIDF    = "tfidf"
)

// Fixed client messages
const (
	MsgNoText      = "No 'text' provided for analysis."
	MsgUnavailable = "Prediction service is unavailable (Model/Tokenizer not loaded)."
	LabelTooShort  = "Unreliable (Input too short or empty for analysis)"
)

// ErrNoText is returned for a missing or empty text field
var ErrNoText = perr.WithField(perr.Validationf(MsgNoText), "text")

// ErrUnavailable is returned while the artifacts are not loaded
var ErrUnavailable = perr.Unavailablef(MsgUnavailable)

// Text accepts any JSON value. Falsy values (null, false, 0, "", [] and {}) decode to ""
// and are rejected as missing; everything else is coerced to a string
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if falsy(v) {
		*t = ""
		return nil
	}
	*t = Text(normalize.Coerce(v))
	return nil
}

func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// PredictRequest is the /predict body. Other fields, such as a title, are ignored
type PredictRequest struct {
	Text Text `json:"text" swaggertype:"string" example:"ALIENS DISCOVERED on Mars, Government is HIDING the truth!"`
}

// PredictResponse is the /predict success body.
// The sequence variant sets prediction and probability; the term weight variant adds a label
type PredictResponse struct {
	Prediction  int      `json:"prediction" example:"1"`
	Label       string   `json:"label,omitempty" example:"Unreliable"`
	Probability *float64 `json:"probability,omitempty" example:"0.93"`
}

// ArtifactInfo describes one loaded artifact
type ArtifactInfo struct {
	Role string `json:"role"`
	Ref  string `json:"ref"`
	ID   string `json:"id"`
	Size int    `json:"size"`
}

// ModelInfo describes the engine state for diagnostics
type ModelInfo struct {
	Variant     string         `json:"variant"`
	Ready       bool           `json:"ready"`
	Error       string         `json:"error,omitempty"`
	Artifacts   []ArtifactInfo `json:"artifacts"`
	VocabSize   int            `json:"vocab_size,omitempty"`
	MaxLen      int            `json:"max_len,omitempty"`
	MinInputLen int            `json:"min_input_len"`
	Model       any            `json:"model,omitempty"`
}
