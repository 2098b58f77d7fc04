// Package module wires the detect engine into the API using modkit
package module

import (
	"context"

	"fakenews/internal/modkit"
	"fakenews/internal/modkit/httpkit"
	"fakenews/internal/services/detect/domain"
	detecthttp "fakenews/internal/services/detect/http"
	"fakenews/internal/services/detect/service"
)

// Ports exposed by the detect module
type Ports struct {
	Predictor domain.PredictorPort
}

// Module is the detect module, mounted at the router root so /predict keeps its path
type Module struct {
	modkit.Base
	engine *service.Engine
}

// New loads the engine from deps.Cfg. A load failure leaves the module mounted but unavailable
func New(ctx context.Context, deps modkit.Deps, opts ...modkit.Option) *Module {
	return WithEngine(Open(ctx, deps), opts...)
}

// Open builds the engine the way New does, for callers that only need the predictor
func Open(ctx context.Context, deps modkit.Deps) *service.Engine {
	return service.Open(ctx, FromConfig(deps.Cfg), deps.Artifacts)
}

// WithEngine wraps an already built engine
func WithEngine(eng *service.Engine, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("detect"),
		modkit.WithPorts(Ports{Predictor: eng}),
		modkit.WithRegister(func(r httpkit.Router) { detecthttp.Register(r, eng) }),
	}, opts...)...)
	return &Module{Base: modkit.Base{B: b}, engine: eng}
}

// Engine returns the loaded engine
func (m *Module) Engine() *service.Engine { return m.engine }

var _ modkit.Module = (*Module)(nil)
