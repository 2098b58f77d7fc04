package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"fakenews/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack. Zero values keep the defaults
type StackOptions struct {
	CORSOrigins []string
	SlowRequest time.Duration
	Timeout     time.Duration
}

// CommonStack returns the baseline middleware applied at the root router
func CommonStack(opt StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: opt.SlowRequest}),

		// browsers on another origin call /predict directly
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: opt.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
	}
	if opt.Timeout > 0 {
		stack = append(stack, middleware.Timeout(opt.Timeout))
	}
	return stack
}
