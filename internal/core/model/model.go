// Package model scores encoded features with exported classifiers.
// Both variants are read only after load and safe for concurrent use
package model

import (
	"fmt"
	"math"

	perr "fakenews/internal/platform/errors"
)

// Labels reported to clients
const (
	LabelReliable   = "Reliable"
	LabelUnreliable = "Unreliable"
)

// DefaultThreshold splits sequence probabilities into classes
const DefaultThreshold = 0.5

// Result is one classification. Prediction is 1 for unreliable and 0 for reliable;
// an integer raw class outside the pair passes through unchanged
type Result struct {
	Raw         Class
	Prediction  int
	Label       string
	Probability *float64 // probability of the unreliable class, nil when the model has none
}

// Polarity names the raw class that means unreliable
type Polarity struct {
	Unreliable int
}

// DefaultPolarity treats raw class 1 as unreliable
func DefaultPolarity() Polarity { return Polarity{Unreliable: 1} }

func polarityOf(p *int) (Polarity, error) {
	if p == nil {
		return DefaultPolarity(), nil
	}
	if *p != 0 && *p != 1 {
		return Polarity{}, perr.Artifactf("unreliable_class must be 0 or 1, got %d", *p)
	}
	return Polarity{Unreliable: *p}, nil
}

// Map turns a raw class into a prediction and label
func (p Polarity) Map(raw int) (int, string) {
	switch raw {
	case p.Unreliable:
		return 1, LabelUnreliable
	case 1 - p.Unreliable:
		return 0, LabelReliable
	}
	return raw, UncertainLabel(IntClass(raw))
}

// UncertainLabel is reported for raw classes the polarity does not cover
func UncertainLabel(raw Class) string {
	return fmt.Sprintf("Uncertain (Model output: %s)", raw)
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// hardSigmoid is the piecewise linear approximation Keras 2 uses
func hardSigmoid(x float64) float64 {
	return math.Max(0, math.Min(1, 0.2*x+0.5))
}

func relu(x float64) float64 { return math.Max(0, x) }

func linear(x float64) float64 { return x }

func activation(name, def string) (func(float64) float64, error) {
	if name == "" {
		name = def
	}
	switch name {
	case "sigmoid":
		return sigmoid, nil
	case "hard_sigmoid":
		return hardSigmoid, nil
	case "tanh":
		return math.Tanh, nil
	case "relu":
		return relu, nil
	case "linear":
		return linear, nil
	}
	return nil, perr.Artifactf("unsupported activation %q", name)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func ptr(x float64) *float64 { return &x }
