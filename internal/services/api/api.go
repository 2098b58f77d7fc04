// Package api provides the HTTP API for the application
package api

import (
	"time"

	"fakenews/internal/modkit"
	"fakenews/internal/modkit/httpkit"
	"fakenews/internal/modkit/module"
	"fakenews/internal/modkit/swaggerkit"
	"fakenews/internal/platform/config"
	phttp "fakenews/internal/platform/net/http"

	metamod "fakenews/internal/services/api/meta/module"
	"fakenews/internal/services/detect/domain"
	detectmod "fakenews/internal/services/detect/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Detect         *detectmod.Module // built before the server listens
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	SlowRequest    time.Duration
	Timeout        time.Duration
}

// OptionsFromConfig reads the CORE_API_ toggles
func OptionsFromConfig(cfg config.Conf, detect *detectmod.Module) Options {
	ac := cfg.Prefix("CORE_API_")
	return Options{
		Config:         cfg,
		Detect:         detect,
		EnableSwagger:  ac.MayBool("SWAGGER", true),
		EnableProfiler: ac.MayBool("PROFILER", false),
		CORSOrigins:    ac.MayCSV("CORS_ORIGINS", []string{"*"}),
		SlowRequest:    ac.MayDuration("SLOW_REQUEST", 2*time.Second),
		Timeout:        ac.MayDuration("REQUEST_TIMEOUT", 0),
	}
}

// Mount mounts the API service onto the given router
// /predict lives at the root, supporting endpoints under /api/v1
func Mount(r phttp.Router, opt Options) {
	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		SlowRequest: opt.SlowRequest,
		Timeout:     opt.Timeout,
	})...)

	deps := modkit.Deps{Cfg: opt.Config}

	var predictor domain.PredictorPort
	if opt.Detect != nil {
		predictor = module.MustPortsOf[domain.PredictorPort](opt.Detect)
		modkit.Mount(r, opt.Detect)

		variant := predictor.Info().Variant
		swaggerkit.Register("detect", func(spec map[string]any) {
			if info, ok := spec["info"].(map[string]any); ok {
				info["x-model-variant"] = variant
			}
		})
	}

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{Predictor: predictor}))
	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		modkit.Mount(api, meta)
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}
