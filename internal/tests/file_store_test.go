package tests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableside/internal/domain"
	"tableside/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	return storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
}

func TestFileStore_MenuDefaultsToSeed(t *testing.T) {
	store := newFileStore(t)

	items, err := store.LoadMenu()

	require.NoError(t, err)
	assert.Equal(t, domain.SeedMenu(), items)
}

func TestFileStore_MenuRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := storage.NewFileStore(path)

	menu := []domain.MenuItem{
		{ID: "1", Name: "Margherita Pizza", Description: "Classic", Price: 12.99, Category: "Pizza", ImageURL: "http://img/1", Availability: true},
		{ID: "2", Name: "Caesar Salad", Description: "Crisp romaine", Price: 8.99, Category: "Salads", ImageURL: "http://img/2", Availability: false},
	}
	require.NoError(t, store.SaveMenu(menu))

	got, err := store.LoadMenu()
	require.NoError(t, err)
	assert.Equal(t, menu, got)

	// a fresh store over the same file sees the persisted collection
	reopened := storage.NewFileStore(path)
	got, err = reopened.LoadMenu()
	require.NoError(t, err)
	assert.Equal(t, menu, got)
}

func TestFileStore_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := storage.NewFileStore(path)

	items, err := store.LoadMenu()
	require.NoError(t, err)
	assert.Equal(t, domain.SeedMenu(), items)

	orders, err := store.LoadOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileStore_Orders(t *testing.T) {
	store := newFileStore(t)

	orders, err := store.LoadOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)

	order := domain.Order{
		ID:          "1700000000000",
		TableNumber: 3,
		TotalAmount: 28.98,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
		Items: []domain.OrderLine{
			{ID: "1700000000000-0", OrderID: "1700000000000", MenuItemID: "1", MenuItemName: "Margherita Pizza", Quantity: 1, Price: 12.99},
		},
	}
	require.NoError(t, store.AppendOrder(order))

	got, err := store.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Items, got.Items)
	assert.Equal(t, domain.StatusPending, got.Status)

	_, err = store.GetOrder("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFileStore_UpdateOrderStatus(t *testing.T) {
	store := newFileStore(t)
	order := domain.Order{ID: "42", Status: domain.StatusPending, CreatedAt: time.Now()}
	require.NoError(t, store.AppendOrder(order))

	updatedAt := time.Now().Add(time.Minute).UTC().Truncate(time.Second)
	require.NoError(t, store.UpdateOrderStatus("42", domain.StatusPreparing, updatedAt))

	got, err := store.GetOrder("42")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, got.Status)
	assert.Equal(t, updatedAt, got.UpdatedAt.UTC())

	err = store.UpdateOrderStatus("missing", domain.StatusPreparing, updatedAt)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
