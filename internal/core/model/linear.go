package model

import (
	"context"
	"encoding/json"
	"math"
	"slices"

	"fakenews/internal/core/encode"
	perr "fakenews/internal/platform/errors"

	"gonum.org/v1/gonum/mat"
)

// Linear model kinds. Only logistic models yield probabilities
const (
	KindLogistic = "logistic"
	KindLinear   = "linear"
)

type linearJSON struct {
	Kind            string      `json:"kind"`
	Coef            [][]float64 `json:"coef"`
	Intercept       []float64   `json:"intercept"`
	Classes         []Class     `json:"classes"`
	UnreliableClass *int        `json:"unreliable_class"`
}

// Linear is a scikit-learn style linear classifier over term weight vectors
type Linear struct {
	kind      string
	coef      *mat.Dense // rows x width
	intercept []float64
	classes   []Class
	polarity  Polarity
}

// LinearInfo describes a loaded linear model
type LinearInfo struct {
	Kind       string  `json:"kind"`
	Width      int     `json:"width"`
	Classes    []Class `json:"classes"`
	Unreliable int     `json:"unreliable_class"`
}

// ParseLinear decodes and validates a linear model export
func ParseLinear(b []byte) (*Linear, error) {
	var raw linearJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArtifact, "decode linear model")
	}
	pol, err := polarityOf(raw.UnreliableClass)
	if err != nil {
		return nil, err
	}
	coef, err := matrix(raw.Coef, "coef")
	if err != nil {
		return nil, err
	}
	m := &Linear{kind: raw.Kind, coef: coef, intercept: raw.Intercept, classes: raw.Classes, polarity: pol}
	switch m.kind {
	case "":
		m.kind = KindLinear
	case KindLogistic, KindLinear:
	default:
		return nil, perr.Artifactf("unsupported model kind %q", raw.Kind)
	}
	if len(m.classes) == 0 {
		m.classes = []Class{IntClass(0), IntClass(1)}
	}

	rows, _ := coef.Dims()
	wantRows := len(m.classes)
	if wantRows == 2 {
		wantRows = 1
	}
	if len(m.classes) < 2 || rows != wantRows {
		return nil, perr.Artifactf("coef has %d rows for %d classes", rows, len(m.classes))
	}
	if m.intercept == nil {
		m.intercept = make([]float64, rows)
	}
	if len(m.intercept) != rows {
		return nil, perr.Artifactf("intercept has %d values, want %d", len(m.intercept), rows)
	}
	return m, nil
}

// Width is the feature dimension the model expects
func (m *Linear) Width() int {
	_, c := m.coef.Dims()
	return c
}

// Info summarizes the model for diagnostics
func (m *Linear) Info() LinearInfo {
	return LinearInfo{Kind: m.kind, Width: m.Width(), Classes: slices.Clone(m.classes), Unreliable: m.polarity.Unreliable}
}

// Scores returns the decision function, one value per coef row
func (m *Linear) Scores(x encode.Sparse) ([]float64, error) {
	if x.Dim != m.Width() {
		return nil, perr.Shapef("feature vector has %d dimensions, model expects %d", x.Dim, m.Width())
	}
	rows, _ := m.coef.Dims()
	out := make([]float64, rows)
	for i := range out {
		out[i] = x.Dot(m.coef.RawRowView(i)) + m.intercept[i]
	}
	return out, nil
}

// Predict classifies x
func (m *Linear) Predict(ctx context.Context, x encode.Sparse) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeInference, "prediction cancelled")
	}
	scores, err := m.Scores(x)
	if err != nil {
		return Result{}, err
	}
	for _, s := range scores {
		if !finite(s) {
			return Result{}, perr.Inferencef("model produced a non finite score")
		}
	}

	var idx int
	var probs []float64
	if len(scores) == 1 {
		if scores[0] > 0 {
			idx = 1
		}
		p1 := sigmoid(scores[0])
		probs = []float64{1 - p1, p1}
	} else {
		for i, s := range scores {
			if s > scores[idx] {
				idx = i
			}
		}
		probs = softmax(scores)
	}

	raw := m.classes[idx]
	res := Result{Raw: raw}
	if raw.IsNum {
		res.Prediction, res.Label = m.polarity.Map(raw.Num)
	} else {
		// string classes are outside the reliable/unreliable pair; report the class position
		res.Prediction, res.Label = idx, UncertainLabel(raw)
	}
	if m.kind == KindLogistic {
		if i := slices.Index(m.classes, IntClass(m.polarity.Unreliable)); i >= 0 {
			res.Probability = ptr(probs[i])
		}
	}
	return res, nil
}

func softmax(xs []float64) []float64 {
	top := slices.Max(xs)
	out := make([]float64, len(xs))
	var sum float64
	for i, x := range xs {
		out[i] = math.Exp(x - top)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
