// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"fakenews/internal/core/version"
	"fakenews/internal/modkit"
	"fakenews/internal/modkit/httpkit"
	"fakenews/internal/services/detect/domain"

	metahttp "fakenews/internal/services/api/meta/http"
)

// Ports are the sibling ports meta reads from
type Ports struct {
	Predictor domain.PredictorPort
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module. Pass WithPorts(Ports{...}) to report model readiness
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{startedAt: time.Now()}
	ports, _ := b.Ports.(Ports)
	external := b.Register
	b.Register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Predictor:   ports.Predictor,
		})
		external(r)
	}
	m.Base = modkit.Base{B: b}
	return m
}
