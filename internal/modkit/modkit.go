package modkit

import (
	"net/http"

	"fakenews/internal/modkit/httpkit"
	"fakenews/internal/modkit/module"
	"fakenews/internal/platform/logger"
)

// Module is the common surface for API modules that can mount routes and expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	module.Module

	// Prefix is the mount path, empty mounts at the parent router
	Prefix() string
	// Middlewares run for this module's routes only
	Middlewares() []func(http.Handler) http.Handler
	// MountRoutes attaches the module endpoints
	MountRoutes(r httpkit.Router)
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// Mount attaches each module under its prefix with its own middleware
func Mount(r httpkit.Router, mods ...Module) {
	for _, m := range mods {
		m := m
		if p := m.Prefix(); p != "" && p != "/" {
			httpkit.MountUnder(r, p, m.Middlewares(), m.MountRoutes)
		} else {
			r.Group(func(g httpkit.Router) {
				if mw := m.Middlewares(); len(mw) > 0 {
					g.Use(mw...)
				}
				m.MountRoutes(g)
			})
		}
		logger.Get().Debug().Str("module", m.Name()).Str("prefix", m.Prefix()).Msg("module mounted")
	}
}
