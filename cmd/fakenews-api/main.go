// @title         Fake News Detection API
// @version       1.0
// @description   Classifies news text as reliable or unreliable

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fakenews/internal/modkit"
	"fakenews/internal/platform/config"
	"fakenews/internal/platform/logger"
	phttp "fakenews/internal/platform/net/http"

	"fakenews/internal/services/api"
	detectmod "fakenews/internal/services/detect/module"
)

func main() {
	// a missing .env is fine, the environment wins either way
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// artifacts load before the server listens; a failure leaves /predict answering 503
	detect := detectmod.New(ctx, modkit.Deps{Log: l, Cfg: root})

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.OptionsFromConfig(root, detect))

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
