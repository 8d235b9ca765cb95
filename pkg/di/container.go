// Package di provides dependency injection container
package di

import (
	"os"

	"github.com/go-kit/log"
	"github.com/pkg/errors"

	"github.com/ssargent/variantdb/pkg/api"     //nolint:depguard
	"github.com/ssargent/variantdb/pkg/storage" //nolint:depguard
	"github.com/ssargent/variantdb/pkg/variant"
)

// Store is a variant store the CLI can close.
type Store interface {
	api.VariantStore
	Close() error
}

// StoreFactory opens variant stores
type StoreFactory interface {
	// OpenStore opens the store in dataDir, creating the directory if needed
	OpenStore(dataDir string, logger log.Logger, decoder *variant.Decoder) (Store, error)
}

// DefaultStoreFactory opens pebble-backed stores
type DefaultStoreFactory struct{}

// NewStoreFactory creates a new store factory
func NewStoreFactory() StoreFactory {
	return &DefaultStoreFactory{}
}

// OpenStore opens a pebble-backed store in dataDir
func (f *DefaultStoreFactory) OpenStore(dataDir string, logger log.Logger, decoder *variant.Decoder) (Store, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, errors.Wrap(err, "failed to create data dir")
	}
	store, err := storage.Open(dataDir, logger, storage.WithDecoder(decoder))
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Container holds all the dependencies for the application
type Container struct {
	storeFactory  StoreFactory
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		storeFactory:  NewStoreFactory(),
		serverFactory: api.NewServerFactory(),
	}
}

// GetStoreFactory returns the store factory
func (c *Container) GetStoreFactory() StoreFactory {
	return c.storeFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetStoreFactory allows overriding the store factory (for testing)
func (c *Container) SetStoreFactory(factory StoreFactory) {
	c.storeFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
