package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/variantdb/pkg/api"
	"github.com/ssargent/variantdb/pkg/variant"
	"github.com/ssargent/variantdb/pkg/variant/varianttest"
)

type stubServerFactory struct{}

func (stubServerFactory) CreateServerStarter() api.ServerStarter { return nil }

func TestContainer_Defaults(t *testing.T) {
	c := NewContainer()

	assert.IsType(t, &DefaultStoreFactory{}, c.GetStoreFactory())
	assert.IsType(t, &api.DefaultServerFactory{}, c.GetServerFactory())
	assert.NotNil(t, c.GetServerFactory().CreateServerStarter())
}

func TestContainer_Overrides(t *testing.T) {
	c := NewContainer()
	c.SetServerFactory(stubServerFactory{})
	assert.IsType(t, stubServerFactory{}, c.GetServerFactory())
}

func TestDefaultStoreFactory_OpenStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStoreFactory().OpenStore(dir, nil, variant.NewDecoder())
	require.NoError(t, err)
	defer store.Close()

	id, err := store.Put(context.Background(), varianttest.EmptyMetadata(), varianttest.Int(7))
	require.NoError(t, err)

	entry, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, varianttest.Int(7), entry.Value)
	assert.DirExists(t, dir)
}
