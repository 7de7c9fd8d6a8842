package pebble

import (
	"github.com/NethermindEth/starkstore/db"
	"github.com/cockroachdb/pebble"
)

type config struct {
	logger   pebble.Logger
	listener db.EventListener
}

type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger routes pebble's internal logging to the given logger.
func WithLogger(logger pebble.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithListener registers an event listener for slot reads and writes.
func WithListener(listener db.EventListener) Option {
	return func(cfg *config) {
		cfg.listener = listener
	}
}
