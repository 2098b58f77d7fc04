package service

import (
	"context"
	"strings"
	"time"

	"fakenews/internal/core/artifact"
	"fakenews/internal/core/encode"
	"fakenews/internal/core/model"
	"fakenews/internal/core/normalize"
	perr "fakenews/internal/platform/errors"
	"fakenews/internal/platform/logger"
	"fakenews/internal/services/detect/domain"
)

// Open loads the engine for cfg through l, or a loader built from cfg when l is nil.
// A load failure is logged and yields an unavailable engine, so the process keeps serving
// and /predict answers 503
func Open(ctx context.Context, cfg Config, l *artifact.Loader) *Engine {
	log := logger.Named("detect")
	start := time.Now()
	if l == nil {
		l = NewLoader(cfg)
	}
	eng, err := Load(ctx, cfg, l)
	if err != nil {
		log.Error().Err(err).Str("variant", cfg.Variant).Msg("artifacts not loaded; prediction unavailable")
		return Unavailable(cfg, err)
	}
	log.Info().
		Str("variant", cfg.Variant).
		Int("vocab", eng.Info().VocabSize).
		Dur("elapsed", time.Since(start)).
		Msg("artifacts loaded")
	return eng
}

// NewLoader builds an artifact loader for cfg, with an S3 source only when a ref needs one
func NewLoader(cfg Config) *artifact.Loader {
	var s3 artifact.Source
	for _, ref := range []string{cfg.ModelRef, cfg.TokenizerRef, cfg.VectorizerRef} {
		if strings.HasPrefix(ref, "s3://") {
			s3 = artifact.NewS3Source(artifact.NewS3Client(cfg.S3))
			break
		}
	}
	l := artifact.NewLoader(cfg.ArtifactDir, s3)
	if cfg.CacheDir != "" {
		l.HTTP = artifact.NewHTTPSource(cfg.CacheDir, artifact.DefaultHTTPTimeout)
	}
	return l
}

// Load reads every artifact the variant needs and assembles a ready engine
func Load(ctx context.Context, cfg Config, l *artifact.Loader) (*Engine, error) {
	e := &Engine{cfg: cfg, norm: normalize.New(cfg.NormalizeOptions())}

	fetch := func(role, ref string) (*artifact.Artifact, error) {
		a, err := l.Load(ctx, ref)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeArtifact, "load %s", role)
		}
		e.artifacts = append(e.artifacts, domain.ArtifactInfo{Role: role, Ref: a.Ref.Raw, ID: a.ID.String(), Size: len(a.Bytes)})
		return a, nil
	}

	switch cfg.Variant {
	case domain.VariantSequence:
		tokA, err := fetch("tokenizer", cfg.TokenizerRef)
		if err != nil {
			return nil, err
		}
		modA, err := fetch("model", cfg.ModelRef)
		if err != nil {
			return nil, err
		}
		tok, err := encode.ParseTokenizer(tokA.Bytes)
		if err != nil {
			return nil, err
		}
		seq, err := encode.NewSequencer(tok, encode.SequenceOptions{
			MaxLen:     cfg.MaxLen,
			Padding:    cfg.Padding,
			Truncating: cfg.Truncating,
		})
		if err != nil {
			return nil, err
		}
		m, err := model.ParseSequence(modA.Bytes, cfg.Threshold)
		if err != nil {
			return nil, err
		}
		if m.InputLength() != seq.MaxLen() {
			logger.Named("detect").Warn().
				Int("max_len", seq.MaxLen()).
				Int("input_length", m.InputLength()).
				Msg("sequence length does not match the model; predictions will fail")
		}
		e.scorer = sequenceScorer{seq: seq, model: m}

	case domain.VariantTFIDF:
		vecA, err := fetch("vectorizer", cfg.VectorizerRef)
		if err != nil {
			return nil, err
		}
		modA, err := fetch("model", cfg.ModelRef)
		if err != nil {
			return nil, err
		}
		vec, err := encode.ParseTFIDF(vecA.Bytes)
		if err != nil {
			return nil, err
		}
		m, err := model.ParseLinear(modA.Bytes)
		if err != nil {
			return nil, err
		}
		if m.Width() != vec.Dim() {
			logger.Named("detect").Warn().
				Int("vocabulary", vec.Dim()).
				Int("coef_width", m.Width()).
				Msg("vectorizer does not match the model; predictions will fail")
		}
		e.scorer = linearScorer{vec: vec, model: m}

	default:
		return nil, perr.Artifactf("unknown variant %q", cfg.Variant)
	}
	return e, nil
}
