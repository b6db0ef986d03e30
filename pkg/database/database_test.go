package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apluscharge_backend/pkg/config"
)

func TestOpenWithoutURL(t *testing.T) {
	store, err := Open(context.Background(), config.DatabaseConfig{}, nil)

	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestOpenSelectsMongoByScheme(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, config.DatabaseConfig{
		URL:  "mongodb://127.0.0.1:27017",
		Name: "apluscharge_test",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(ctx) })

	mongoStore, ok := store.(*MongoStore)
	require.True(t, ok)

	name, err := mongoStore.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "apluscharge_test", name)
}

func TestIsMongoURL(t *testing.T) {
	assert.True(t, isMongoURL("mongodb://localhost"))
	assert.True(t, isMongoURL("mongodb+srv://cluster0.example.net"))
	assert.False(t, isMongoURL("postgres://localhost/leads"))
	assert.False(t, isMongoURL("host=localhost dbname=leads"))
}
