package domain

import (
	"context"

	"fakenews/internal/core/langhint"
)

// Outcome is a prediction plus the diagnostics gathered on the way
type Outcome struct {
	Response PredictResponse
	Cleaned  string
	Hint     langhint.Hint
	Short    bool // answered by the short input guard without the model
}

// PredictorPort is what transports need from the detect service
type PredictorPort interface {
	// Ready reports whether artifacts are loaded
	Ready() bool
	// Predict classifies raw text. It fails with ErrUnavailable when not ready
	Predict(ctx context.Context, text string) (Outcome, error)
	// Info describes the loaded artifacts
	Info() ModelInfo
}
