// Package api provides factory implementations for dependency injection
package api

import (
	"context"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/variantdb/pkg/variant"
)

type serverOptions struct {
	decoder  *variant.Decoder
	logger   log.Logger
	registry *prometheus.Registry
}

// ServerOption configures StartServer.
type ServerOption func(*serverOptions)

// WithDecoder sets the decoder used by the decode and get endpoints.
func WithDecoder(d *variant.Decoder) ServerOption {
	return func(o *serverOptions) {
		o.decoder = d
	}
}

// WithLogger sets the server logger.
func WithLogger(logger log.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = logger
	}
}

// WithRegistry sets the registry metrics are registered with and served from.
func WithRegistry(reg *prometheus.Registry) ServerOption {
	return func(o *serverOptions) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(ctx context.Context, store VariantStore, config ServerConfig, opts ...ServerOption) error {
	return StartServer(ctx, store, config, opts...)
}
