package modkit

import (
	"net/http"

	"fakenews/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Base implements Module from a Built so modules only add their constructor
type Base struct{ B Built }

// Name satisfies Module
func (b Base) Name() string { return b.B.Name }

// Prefix satisfies Module
func (b Base) Prefix() string { return b.B.Prefix }

// Middlewares satisfies Module
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.B.Mw }

// Ports satisfies Module
func (b Base) Ports() any { return b.B.Ports }

// MountRoutes satisfies Module
func (b Base) MountRoutes(r httpkit.Router) { b.B.Register(r) }
