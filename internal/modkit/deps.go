// Package modkit provides module wiring and core deps
package modkit

import (
	"fakenews/internal/core/artifact"
	"fakenews/internal/platform/config"
	"fakenews/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log       *logger.Logger
	Cfg       config.Conf
	Artifacts *artifact.Loader // nil lets the module build its own from config
}

// Logger returns a component logger, falling back to the global one
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
