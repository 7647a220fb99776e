package repository

import (
	"context"
	"testing"

	"retail-backoffice-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreItemLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.CreateItem(ctx, model.Item{Name: "Mouse", Category: "Electronics", Price: 29.99})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := store.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mouse", got.Name)

	got.Name = "Wireless Mouse"
	require.NoError(t, err)
	require.NoError(t, store.UpdateItem(ctx, got))

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Wireless Mouse", items[0].Name)

	require.NoError(t, store.DeleteItem(ctx, id))
	_, err = store.GetItem(ctx, id)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMemoryStoreUpdateMissingItem(t *testing.T) {
	store := NewMemoryStore()

	err := store.UpdateItem(context.Background(), model.Item{ID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.NoError(t, store.DeleteItem(ctx, 42))
	assert.NoError(t, store.DeleteInventoryRecord(ctx, 42))
}

func TestMemoryStoreListInventoryResolvesItemName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	itemID, err := store.CreateItem(ctx, model.Item{Name: "Mouse", Category: "Electronics", Price: 29.99})
	require.NoError(t, err)

	_, err = store.CreateInventoryRecord(ctx, model.InventoryRecord{
		ItemID:        itemID,
		Quantity:      3,
		MinStockLevel: 10,
		Location:      "Store Front",
	})
	require.NoError(t, err)

	records, err := store.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Mouse", records[0].ItemName)
}

func TestMemoryStoreUpdateInventoryPreservesItemID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	itemID, err := store.CreateItem(ctx, model.Item{Name: "Mouse", Category: "Electronics", Price: 29.99})
	require.NoError(t, err)

	recID, err := store.CreateInventoryRecord(ctx, model.InventoryRecord{
		ItemID:        itemID,
		Quantity:      3,
		MinStockLevel: 10,
		Location:      "Store Front",
	})
	require.NoError(t, err)

	err = store.UpdateInventoryRecord(ctx, model.InventoryRecord{
		ID:            recID,
		Quantity:      12,
		MinStockLevel: 10,
		Location:      "Warehouse A",
	})
	require.NoError(t, err)

	records, err := store.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, itemID, records[0].ItemID)
	assert.Equal(t, 12, records[0].Quantity)
}

func TestMemoryStorePurchasesAppendOnly(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	lines := []model.PurchaseLine{{ItemName: "Mouse", Quantity: 2, UnitPrice: 29.99, Total: 59.98}}
	id, err := store.CreatePurchase(ctx, model.Purchase{
		CustomerName:  "Ana Costa",
		CustomerEmail: "ana@example.com",
		Lines:         lines,
		TotalAmount:   59.98,
		PaymentMethod: "Cash",
		Status:        model.PurchaseStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	purchases, err := store.ListPurchases(ctx)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	require.Len(t, purchases[0].Lines, 1)
	assert.InDelta(t, 59.98, purchases[0].Lines[0].Total, 1e-9)
}
