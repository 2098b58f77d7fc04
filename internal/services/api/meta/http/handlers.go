// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"github.com/samber/lo"

	"fakenews/internal/core/version"
	"fakenews/internal/modkit/httpkit"
	"fakenews/internal/services/detect/domain"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Predictor   domain.PredictorPort // nil reports the model check as skipped
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/model", h.model)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"fakenews-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"model"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"load tokenizer: open tokenizer.json: no such file or directory"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"fakenews-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness of the loaded model
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	checks := []ReadyCheck{h.modelCheck()}

	status, overall := http.StatusOK, "ok"
	if lo.SomeBy(checks, func(c ReadyCheck) bool { return c.Status == "fail" }) {
		status, overall = http.StatusServiceUnavailable, "fail"
	}
	return httpkit.Status(status, ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}), nil
}

func (h *handlers) modelCheck() ReadyCheck {
	p := h.deps.Predictor
	if p == nil {
		return ReadyCheck{Name: "model", Status: "skipped"}
	}
	if !p.Ready() {
		return ReadyCheck{Name: "model", Status: "fail", Error: p.Info().Error}
	}
	return ReadyCheck{Name: "model", Status: "ok"}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/model Meta metaModel
// @Summary Loaded model and artifact details
// @Tags Meta
// @Produce json
// @Success 200 {object} domain.ModelInfo
// @Router /meta/model [get]
func (h *handlers) model(_ *http.Request) (any, error) {
	if h.deps.Predictor == nil {
		return domain.ModelInfo{Artifacts: []domain.ArtifactInfo{}}, nil
	}
	return h.deps.Predictor.Info(), nil
}
