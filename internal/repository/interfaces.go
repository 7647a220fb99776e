package repository

import (
	"context"
	"errors"

	"retail-backoffice-api/internal/model"
)

// Sentinel errors returned by store implementations.
var (
	// ErrItemNotFound is returned when an item id does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInventoryRecordNotFound is returned when an inventory record id does not exist.
	ErrInventoryRecordNotFound = errors.New("inventory record not found")
)

// ItemStore defines catalog item data access methods.
type ItemStore interface {
	// ListItems returns all items in store-native order.
	ListItems(ctx context.Context) ([]model.Item, error)

	// GetItem returns a single item or ErrItemNotFound.
	GetItem(ctx context.Context, id int64) (model.Item, error)

	// CreateItem persists a new item and returns its assigned id.
	CreateItem(ctx context.Context, item model.Item) (int64, error)

	// UpdateItem full-replaces the mutable fields of an existing item.
	// Returns ErrItemNotFound if the id does not exist.
	UpdateItem(ctx context.Context, item model.Item) error

	// DeleteItem removes an item. Deleting an absent id is not an error.
	DeleteItem(ctx context.Context, id int64) error
}

// InventoryStore defines inventory record data access methods.
type InventoryStore interface {
	// ListInventory returns all records with the referenced item name resolved.
	ListInventory(ctx context.Context) ([]model.InventoryRecord, error)

	// CreateInventoryRecord persists a new record and returns its assigned id.
	CreateInventoryRecord(ctx context.Context, rec model.InventoryRecord) (int64, error)

	// UpdateInventoryRecord full-replaces an existing record.
	// Returns ErrInventoryRecordNotFound if the id does not exist.
	UpdateInventoryRecord(ctx context.Context, rec model.InventoryRecord) error

	// DeleteInventoryRecord removes a record. Deleting an absent id is not an error.
	DeleteInventoryRecord(ctx context.Context, id int64) error
}

// PurchaseStore defines purchase ledger data access methods.
// The ledger is append-only: there is no update or delete.
type PurchaseStore interface {
	// ListPurchases returns all purchases with their embedded line items.
	ListPurchases(ctx context.Context) ([]model.Purchase, error)

	// CreatePurchase persists a completed purchase with its lines and
	// returns the assigned id.
	CreatePurchase(ctx context.Context, p model.Purchase) (int64, error)
}

// Store is the full persistence surface backing the API.
type Store interface {
	ItemStore
	InventoryStore
	PurchaseStore

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
