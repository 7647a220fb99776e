package service

import (
	"context"
	"testing"

	"retail-backoffice-api/internal/model"
	"retail-backoffice-api/internal/repository"
	"retail-backoffice-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture(t *testing.T) (*InventoryService, *repository.MemoryStore, int64) {
	t.Helper()
	store := repository.NewMemoryStore()
	itemID, err := store.CreateItem(context.Background(), model.Item{
		Name:     "Mouse",
		Category: "Electronics",
		Price:    29.99,
	})
	require.NoError(t, err)
	return NewInventoryService(store, store), store, itemID
}

func TestInventoryCreateDefaultsMinStockLevel(t *testing.T) {
	svc, store, itemID := newInventoryFixture(t)

	_, err := svc.Create(context.Background(), InventoryInput{
		ItemID:   itemID,
		Quantity: intPtr(20),
		Location: "Store Front",
	})
	require.NoError(t, err)

	records, err := store.ListInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.DefaultMinStockLevel, records[0].MinStockLevel)
}

func TestInventoryCreateValidation(t *testing.T) {
	svc, _, itemID := newInventoryFixture(t)

	tests := []struct {
		name  string
		in    InventoryInput
		field string
	}{
		{"missing quantity", InventoryInput{ItemID: itemID, Location: "Store Front"}, "quantity"},
		{"negative quantity", InventoryInput{ItemID: itemID, Quantity: intPtr(-1), Location: "Store Front"}, "quantity"},
		{"negative min level", InventoryInput{ItemID: itemID, Quantity: intPtr(1), MinStockLevel: intPtr(-1), Location: "Store Front"}, "min_stock_level"},
		{"missing location", InventoryInput{ItemID: itemID, Quantity: intPtr(1)}, "location"},
		{"unknown location", InventoryInput{ItemID: itemID, Quantity: intPtr(1), Location: "Rooftop"}, "location"},
		{"missing item reference", InventoryInput{Quantity: intPtr(1), Location: "Store Front"}, "item_id"},
		{"dangling item reference", InventoryInput{ItemID: 999, Quantity: intPtr(1), Location: "Store Front"}, "item_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			require.Error(t, err)

			apiErr, ok := err.(*apierror.Error)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)

			found := false
			for _, d := range apiErr.Details {
				if d.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected detail for %s", tt.field)
		})
	}
}

func TestInventoryListDerivesStatus(t *testing.T) {
	svc, _, itemID := newInventoryFixture(t)

	_, err := svc.Create(context.Background(), InventoryInput{
		ItemID: itemID, Quantity: intPtr(3), MinStockLevel: intPtr(10), Location: "Store Front",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), InventoryInput{
		ItemID: itemID, Quantity: intPtr(20), MinStockLevel: intPtr(5), Location: "Warehouse A",
	})
	require.NoError(t, err)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.StatusLowStock, records[0].Status)
	assert.Equal(t, model.StatusInStock, records[1].Status)
	assert.Equal(t, "Mouse", records[0].ItemName)
}

func TestInventoryUpdateFlipsStatusOnNextRead(t *testing.T) {
	svc, _, itemID := newInventoryFixture(t)

	id, err := svc.Create(context.Background(), InventoryInput{
		ItemID: itemID, Quantity: intPtr(20), MinStockLevel: intPtr(5), Location: "Store Front",
	})
	require.NoError(t, err)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.StatusInStock, records[0].Status)

	// Dropping quantity to the threshold flips the derived status with
	// no separate status write.
	err = svc.Update(context.Background(), id, InventoryInput{
		Quantity: intPtr(5), MinStockLevel: intPtr(5), Location: "Store Front",
	})
	require.NoError(t, err)

	records, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusLowStock, records[0].Status)
}

func TestInventoryUpdateMissing(t *testing.T) {
	svc, _, _ := newInventoryFixture(t)

	err := svc.Update(context.Background(), 42, InventoryInput{
		Quantity: intPtr(1), MinStockLevel: intPtr(1), Location: "Store Front",
	})
	require.Error(t, err)

	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestInventoryDeleteIdempotent(t *testing.T) {
	svc, store, _ := newInventoryFixture(t)

	require.NoError(t, svc.Delete(context.Background(), 42))

	records, err := store.ListInventory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
