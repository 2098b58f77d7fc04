// Package detecttest stages tiny artifact sets so tests can build real engines
package detecttest

import (
	"testing"

	"fakenews/internal/platform/testkit"
	"fakenews/internal/services/detect/domain"
	"fakenews/internal/services/detect/service"
)

// Headline mentions every term the fixtures know about
const Headline = "ALIENS DISCOVERED on Mars, Government is HIDING the truth!"

// Vocabulary is the tokenizer word index of the sequence fixture
var Vocabulary = map[string]int{"<OOV>": 1, "aliens": 2, "discovered": 3, "mars": 4, "government": 5, "hiding": 6, "truth": 7}

// SequenceModel is a one unit LSTM whose output is sigmoid(bias), whatever the input
func SequenceModel(inputLen int, bias float64) map[string]any {
	emb := make([][]float64, len(Vocabulary)+1)
	for i := range emb {
		emb[i] = []float64{float64(i) / 10}
	}
	return map[string]any{
		"input_length": inputLen,
		"embedding":    emb,
		"lstm": map[string]any{
			"kernel":           [][]float64{{0.1, 0.2, 0.3, 0.4}},
			"recurrent_kernel": [][]float64{{0.1, 0.1, 0.1, 0.1}},
			"bias":             []float64{0, 1, 0, 0},
		},
		"dense": []map[string]any{{
			"kernel":     [][]float64{{0}},
			"bias":       []float64{bias},
			"activation": "sigmoid",
		}},
	}
}

// Tokenizer is a Keras style tokenizer export over Vocabulary
func Tokenizer() map[string]any {
	return map[string]any{
		"class_name": "Tokenizer",
		"config": map[string]any{
			"oov_token":  "<OOV>",
			"word_index": Vocabulary,
		},
	}
}

// Vectorizer is a term-weight vocabulary over the stemmed headline terms
func Vectorizer() map[string]any {
	return map[string]any{
		"vocabulary": map[string]int{"alien": 0, "govern": 1, "hide": 2, "truth": 3},
		"idf":        []float64{1, 1, 1, 1},
	}
}

// LinearModel scores positive when any vocabulary term is present
func LinearModel() map[string]any {
	return map[string]any{
		"kind":      "logistic",
		"coef":      [][]float64{{2, 2, 2, 2}},
		"intercept": []float64{-1},
		"classes":   []int{0, 1},
	}
}

// SequenceConfig writes the sequence fixtures and returns a config pointing at them
func SequenceConfig(t *testing.T, maxLen int, bias float64) service.Config {
	t.Helper()
	cfg := service.DefaultConfig(domain.VariantSequence)
	cfg.MaxLen = maxLen
	cfg.TokenizerRef = testkit.WriteJSON(t, service.DefaultTokenizer, Tokenizer())
	cfg.ModelRef = testkit.WriteJSON(t, service.DefaultSequenceModel, SequenceModel(maxLen, bias))
	return cfg
}

// TFIDFConfig writes the term-weight fixtures and returns a config pointing at them
func TFIDFConfig(t *testing.T) service.Config {
	t.Helper()
	cfg := service.DefaultConfig(domain.VariantTFIDF)
	cfg.VectorizerRef = testkit.WriteJSON(t, service.DefaultVectorizer, Vectorizer())
	cfg.ModelRef = testkit.WriteJSON(t, service.DefaultLinearModel, LinearModel())
	return cfg
}

// Engine loads cfg and fails the test when it is not ready
func Engine(t *testing.T, cfg service.Config) *service.Engine {
	t.Helper()
	eng := service.Open(t.Context(), cfg, nil)
	if !eng.Ready() {
		t.Fatalf("engine not ready: %v", eng.Err())
	}
	return eng
}
