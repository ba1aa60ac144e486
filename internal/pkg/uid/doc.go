// Package uid provides identifier generators.
//
// Two shapes are available: string UUIDs (v7, time-ordered) for correlation
// ids and OAuth state values, and numeric snowflakes for database primary
// keys. Callers should depend on the concrete generator they need and inject
// it, so tests can substitute deterministic ids.
package uid
