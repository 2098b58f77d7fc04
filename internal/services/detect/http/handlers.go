// Package http provides the /predict endpoint
package http

import (
	"net/http"

	"fakenews/internal/modkit/httpkit"
	"fakenews/internal/services/detect/domain"
)

type handlers struct {
	svc domain.PredictorPort
}

// Register mounts the predict route
func Register(r httpkit.Router, svc domain.PredictorPort) {
	h := &handlers{svc: svc}
	r.Group(func(g httpkit.Router) {
		g.Use(RequireReady(svc))
		httpkit.PostJSON(g, "/predict", h.predict)
	})
}

// RequireReady answers 503 before the body is read while the artifacts are not loaded
func RequireReady(svc domain.PredictorPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !svc.Ready() {
				httpkit.RespondError(w, r, domain.ErrUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// swagger:route POST /predict Predict predict
// @Summary Classify a news text
// @Tags Predict
// @Accept json
// @Produce json
// @Param body body domain.PredictRequest true "text to classify"
// @Success 200 {object} domain.PredictResponse
// @Failure 400 {object} perr.Wire
// @Failure 503 {object} perr.Wire
// @Router /predict [post]
func (h *handlers) predict(r *http.Request, in domain.PredictRequest) (any, error) {
	if in.Text == "" {
		return nil, domain.ErrNoText
	}

	out, err := h.svc.Predict(r.Context(), string(in.Text))
	if err != nil {
		return nil, err
	}
	return out.Response, nil
}
