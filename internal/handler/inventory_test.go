package handler_test

import (
	"net/http"
	"testing"

	"retail-backoffice-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestItem(t *testing.T, api *testAPI) int64 {
	t.Helper()

	w := api.do(t, http.MethodPost, "/api/items", map[string]any{
		"name": "Mouse", "category": "Electronics", "price": 29.99,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody[resultBody](t, w).ID
}

func TestCreateInventoryRecord(t *testing.T) {
	api := newTestAPI()
	itemID := createTestItem(t, api)

	w := api.do(t, http.MethodPost, "/api/inventory", map[string]any{
		"item_id":         itemID,
		"quantity":        3,
		"min_stock_level": 10,
		"location":        "Store Front",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodGet, "/api/inventory", nil)
	require.Equal(t, http.StatusOK, w.Code)

	records := decodeBody[[]model.InventoryRecord](t, w)
	require.Len(t, records, 1)
	assert.Equal(t, itemID, records[0].ItemID)
	assert.Equal(t, "Mouse", records[0].ItemName)
	assert.Equal(t, model.StatusLowStock, records[0].Status)
}

func TestCreateInventoryRecordDefaultsMinStockLevel(t *testing.T) {
	api := newTestAPI()
	itemID := createTestItem(t, api)

	w := api.do(t, http.MethodPost, "/api/inventory", map[string]any{
		"item_id":  itemID,
		"quantity": 20,
		"location": "Warehouse A",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodGet, "/api/inventory", nil)
	records := decodeBody[[]model.InventoryRecord](t, w)
	require.Len(t, records, 1)
	assert.Equal(t, model.DefaultMinStockLevel, records[0].MinStockLevel)
	assert.Equal(t, model.StatusInStock, records[0].Status)
}

func TestCreateInventoryRecordInvalid(t *testing.T) {
	api := newTestAPI()
	itemID := createTestItem(t, api)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing quantity", map[string]any{"item_id": itemID, "location": "Store Front"}, "quantity"},
		{"negative quantity", map[string]any{"item_id": itemID, "quantity": -1, "location": "Store Front"}, "quantity"},
		{"unknown location", map[string]any{"item_id": itemID, "quantity": 1, "location": "Rooftop"}, "location"},
		{"dangling item reference", map[string]any{"item_id": 999, "quantity": 1, "location": "Store Front"}, "item_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/inventory", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeBody[errorBody](t, w)
			assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
			assert.True(t, body.hasDetail(tt.field), "expected detail for %s", tt.field)
		})
	}
}

func TestInventoryStatusIsServerDerived(t *testing.T) {
	api := newTestAPI()
	itemID := createTestItem(t, api)

	// A caller-supplied status contradicting the quantity is ignored.
	w := api.do(t, http.MethodPost, "/api/inventory", map[string]any{
		"item_id":         itemID,
		"quantity":        2,
		"min_stock_level": 10,
		"location":        "Store Front",
		"status":          "In Stock",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodGet, "/api/inventory", nil)
	records := decodeBody[[]model.InventoryRecord](t, w)
	require.Len(t, records, 1)
	assert.Equal(t, model.StatusLowStock, records[0].Status)
}

func TestUpdateInventoryRecordFlipsStatus(t *testing.T) {
	api := newTestAPI()
	itemID := createTestItem(t, api)

	w := api.do(t, http.MethodPost, "/api/inventory", map[string]any{
		"item_id": itemID, "quantity": 20, "min_stock_level": 5, "location": "Store Front",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody[resultBody](t, w).ID

	w = api.do(t, http.MethodPut, "/api/inventory/1", map[string]any{
		"quantity": 4, "min_stock_level": 5, "location": "Store Front",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(1), id)

	// Status flips on the very next read, with no separate write.
	w = api.do(t, http.MethodGet, "/api/inventory", nil)
	records := decodeBody[[]model.InventoryRecord](t, w)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].Quantity)
	assert.Equal(t, model.StatusLowStock, records[0].Status)
}

func TestUpdateInventoryRecordNotFound(t *testing.T) {
	api := newTestAPI()

	w := api.do(t, http.MethodPut, "/api/inventory/42", map[string]any{
		"quantity": 1, "min_stock_level": 1, "location": "Store Front",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody[errorBody](t, w).Error.Code)
}

func TestDeleteInventoryRecordIdempotent(t *testing.T) {
	api := newTestAPI()

	w := api.do(t, http.MethodDelete, "/api/inventory/42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody[resultBody](t, w).Success)
}
