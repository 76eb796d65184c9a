// Package openapi exposes the contracts for deriving form definitions
// from annotated OpenAPI documents: sources, the raw document wrapper,
// and the loader and parser ports. Implementations live under
// internal/openapi so kin-openapi stays hidden from consumers; the
// top-level formflow package wires defaults together.
package openapi
