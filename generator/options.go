// SPDX-License-Identifier: MIT
// Package: coopgraph/generator
//
// options.go — functional options for SplitRandom.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.
//   • Defaults are resolved in newConfig; later options override earlier ones.

package generator

// Option customizes a SplitRandom generator.
type Option func(*config)

type config struct {
	attempts int
}

const defaultAttempts = 8

func newConfig(opts ...Option) config {
	cfg := config{attempts: defaultAttempts}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithAttempts bounds the number of construction attempts per Generate call.
// Panics if n < 1.
func WithAttempts(n int) Option {
	if n < 1 {
		panic("generator: WithAttempts(n<1)")
	}
	return func(c *config) { c.attempts = n }
}
