package module

import (
	"fakenews/internal/core/artifact"
	"fakenews/internal/core/encode"
	"fakenews/internal/platform/config"
	"fakenews/internal/services/detect/domain"
	"fakenews/internal/services/detect/service"
)

// FromConfig reads the detect settings. Unset keys fall back to the variant's defaults
func FromConfig(cfg config.Conf) service.Config {
	df := cfg.Prefix("CORE_DETECT_")
	variant := df.MayEnum("VARIANT", domain.VariantSequence, domain.VariantSequence, domain.VariantTFIDF)
	def := service.DefaultConfig(variant)

	s3 := cfg.Prefix("SERVICE_S3_")
	return service.Config{
		Variant:       def.Variant,
		ArtifactDir:   df.MayString("ARTIFACT_DIR", "."),
		ModelRef:      df.MayString("MODEL", def.ModelRef),
		TokenizerRef:  df.MayString("TOKENIZER", def.TokenizerRef),
		VectorizerRef: df.MayString("VECTORIZER", def.VectorizerRef),
		MaxLen:        df.MayInt("MAX_LEN", def.MaxLen),
		Padding:       df.MayEnum("PADDING", def.Padding, encode.Pre, encode.Post),
		Truncating:    df.MayEnum("TRUNCATING", def.Truncating, encode.Pre, encode.Post),
		Threshold:     df.MayFloat64("THRESHOLD", def.Threshold),
		MinInputLen:   df.MayInt("MIN_INPUT_LEN", def.MinInputLen),
		DropNewlines:  df.MayBool("DROP_NEWLINES", def.DropNewlines),
		FoldMarks:     df.MayBool("FOLD_MARKS", def.FoldMarks),
		CacheDir:      df.MayString("CACHE_DIR", ""),
		S3: artifact.S3Config{
			Endpoint:  s3.MayString("ENDPOINT", ""),
			Region:    s3.MayString("REGION", ""),
			AccessKey: s3.MayString("ACCESS_KEY", ""),
			SecretKey: s3.MayString("SECRET_KEY", ""),
		},
	}
}
