package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "fakenews/internal/platform/errors"
	"fakenews/internal/platform/logger"
	phttp "fakenews/internal/platform/net/http"
)

// RecoverJSON converts panics into {"error": "Internal server error: panic recovered"} with a 500
// and logs the stack with the request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}

			// format stack like chi recover
			stack := strings.ReplaceAll(string(debug.Stack()), "\n", "\n\t")
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Msgf("panic recovered\n\t%s", stack)

			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
