package localstore

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwmarketing/loyalty-go/internal/testutil"
	"github.com/cwmarketing/loyalty-go/pkg/config"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.LocalStoreConfig{Path: filepath.Join(t.TempDir(), "store.db")}
	store, err := Open(cfg, testutil.NewLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestTokenLifecycle(t *testing.T) {
	t.Parallel()

	store := setupStore(t)

	_, err := store.Token()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.SaveToken("tok-1"))
	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.SaveToken("tok-2"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	require.NoError(t, store.Reset())
	_, err = store.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveProfileKeepsToken(t *testing.T) {
	t.Parallel()

	store := setupStore(t)
	require.NoError(t, store.SaveToken("tok-1"))

	card := "wallet-card"
	require.NoError(t, store.SaveProfile(models.Profile{
		ID:        "u1",
		FirstName: "Ann",
		LastName:  "Lee",
		Phone:     9991234567,
		Card:      42,
		Wallet:    models.Wallet{Card: &card},
		Balances:  models.Balances{Total: 350.5},
	}))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	profile, err := store.Profile()
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "Ann", profile.FirstName)
	assert.Equal(t, int64(9991234567), profile.Phone)
	assert.Equal(t, float32(350.5), profile.Balances.Total)
	require.NotNil(t, profile.Wallet.Card)
	assert.Equal(t, "wallet-card", *profile.Wallet.Card)
}

func TestAddressBook(t *testing.T) {
	t.Parallel()

	store := setupStore(t)

	flat := int64(7)
	saved, err := store.SaveAddress(models.Address{City: "Moscow", Street: "Arbat", Home: "1", Flat: &flat})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	other, err := store.SaveAddress(models.Address{City: "Moscow", Street: "Tverskaya", Home: "5"})
	require.NoError(t, err)

	addresses, err := store.Addresses()
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	require.NoError(t, store.DeleteAddress(saved.ID))
	addresses, err = store.Addresses()
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, other.ID, addresses[0].ID)
	assert.Equal(t, "Tverskaya", addresses[0].Street)
}

func TestRefreshConceptsSweepsStale(t *testing.T) {
	t.Parallel()

	store := setupStore(t)

	require.NoError(t, store.RefreshConcepts([]models.Concept{
		{ID: "c1", Name: "Sushi Bar", Order: 2},
		{ID: "c2", Name: "Steak House", Order: 1},
	}))

	cached, err := store.Concepts()
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, "c2", cached[0].ID)

	require.NoError(t, store.RefreshConcepts([]models.Concept{
		{ID: "c1", Name: "Sushi Bar Renamed", Order: 1},
	}))

	cached, err = store.Concepts()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "Sushi Bar Renamed", cached[0].Name)

	require.NoError(t, store.RefreshConcepts(nil))
	cached, err = store.Concepts()
	require.NoError(t, err)
	assert.Empty(t, cached)
}
