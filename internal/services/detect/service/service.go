// Package service holds the detect engine: the loaded artifacts plus the request pipeline
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"fakenews/internal/core/encode"
	"fakenews/internal/core/langhint"
	"fakenews/internal/core/model"
	"fakenews/internal/core/normalize"
	perr "fakenews/internal/platform/errors"
	"fakenews/internal/platform/logger"
	str "fakenews/internal/platform/strings"
	"fakenews/internal/services/detect/domain"
)

// previewLen bounds the text echoed into diagnostics
const previewLen = 50

// scorer is one variant's encode and infer half
type scorer interface {
	score(ctx context.Context, cleaned string) (model.Result, error)
	describe(info *domain.ModelInfo)
}

// Engine is the capability object behind /predict. It is immutable after construction;
// an engine built by Unavailable answers every prediction with domain.ErrUnavailable
type Engine struct {
	cfg       Config
	norm      *normalize.Normalizer
	scorer    scorer
	artifacts []domain.ArtifactInfo
	loadErr   error
}

// Unavailable returns an engine that is not ready because loading failed with err
func Unavailable(cfg Config, err error) *Engine {
	return &Engine{cfg: cfg, norm: normalize.New(cfg.NormalizeOptions()), loadErr: err}
}

// Ready reports whether artifacts are loaded
func (e *Engine) Ready() bool { return e.scorer != nil }

// Err is the load failure of an unavailable engine
func (e *Engine) Err() error { return e.loadErr }

// Config returns the effective configuration
func (e *Engine) Config() Config { return e.cfg }

// Clean runs only the normalizer, used by diagnostics and the CLI
func (e *Engine) Clean(text string) string { return e.norm.Normalize(text) }

// Predict validates, cleans, encodes and scores text
func (e *Engine) Predict(ctx context.Context, text string) (domain.Outcome, error) {
	if !e.Ready() {
		return domain.Outcome{}, domain.ErrUnavailable
	}
	if text == "" {
		return domain.Outcome{}, domain.ErrNoText
	}
	log := logger.C(ctx)

	if e.cfg.MinInputLen > 0 && utf8.RuneCountInString(strings.TrimSpace(text)) < e.cfg.MinInputLen {
		log.Debug().Str("input", str.Preview(text, previewLen)).Msg("input below minimum length")
		return domain.Outcome{
			Response: domain.PredictResponse{Prediction: 1, Label: domain.LabelTooShort},
			Short:    true,
		}, nil
	}

	cleaned := e.norm.Normalize(text)
	res, err := e.scorer.score(ctx, cleaned)
	if err != nil {
		return domain.Outcome{}, perr.WithOp(err, "detect.Predict")
	}

	out := domain.Outcome{
		Response: domain.PredictResponse{Prediction: res.Prediction, Probability: res.Probability},
		Cleaned:  cleaned,
		Hint:     langhint.Detect(text),
	}
	if e.cfg.Variant == domain.VariantTFIDF {
		out.Response.Label = res.Label
	}

	ev := log.Debug().
		Str("input", str.Preview(text, previewLen)).
		Str("cleaned", str.Preview(cleaned, previewLen)).
		Str("lang", out.Hint.Lang).
		Stringer("raw", res.Raw).
		Str("label", res.Label)
	if res.Probability != nil {
		ev = ev.Float64("probability", *res.Probability)
	}
	ev.Msg("prediction")
	if out.Hint.Foreign() {
		log.Warn().Str("lang", out.Hint.Lang).Msg("input does not look like English")
	}
	return out, nil
}

// Info describes the engine for the meta endpoints
func (e *Engine) Info() domain.ModelInfo {
	info := domain.ModelInfo{
		Variant:     e.cfg.Variant,
		Ready:       e.Ready(),
		Artifacts:   append([]domain.ArtifactInfo{}, e.artifacts...),
		MinInputLen: e.cfg.MinInputLen,
	}
	if e.loadErr != nil {
		info.Error = e.loadErr.Error()
	}
	if e.scorer != nil {
		e.scorer.describe(&info)
	}
	return info
}

type sequenceScorer struct {
	seq   *encode.Sequencer
	model *model.Sequence
}

func (s sequenceScorer) score(ctx context.Context, cleaned string) (model.Result, error) {
	return s.model.Predict(ctx, s.seq.Encode(cleaned))
}

func (s sequenceScorer) describe(info *domain.ModelInfo) {
	info.VocabSize = s.seq.VocabSize()
	info.MaxLen = s.seq.MaxLen()
	info.Model = s.model.Info()
}

type linearScorer struct {
	vec   *encode.TFIDF
	model *model.Linear
}

func (s linearScorer) score(ctx context.Context, cleaned string) (model.Result, error) {
	return s.model.Predict(ctx, s.vec.Transform(cleaned))
}

func (s linearScorer) describe(info *domain.ModelInfo) {
	info.VocabSize = s.vec.Dim()
	info.Model = s.model.Info()
}

var _ domain.PredictorPort = (*Engine)(nil)
