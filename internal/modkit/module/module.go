// Package module defines the minimal contract for looking up module ports
package module

// Module is the part of a modkit module needed to pull ports out of it
// kept separate so port lookups do not import the router seam
type Module interface {
	Name() string
	Ports() any
}
