// Package resilience provides request pacing and circuit breaking.
// Uses golang.org/x/time/rate for pacing and sony/gobreaker for circuit breaking.
package resilience
