// Package template defines the renderer-agnostic template engine contract.
// Renderers that produce page shells or custom markup depend on this seam
// rather than on a concrete engine, so hosts can swap template backends
// without touching renderer code.
package template
