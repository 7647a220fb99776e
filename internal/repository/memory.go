package repository

import (
	"context"
	"sync"

	"retail-backoffice-api/internal/model"
)

// MemoryStore is an in-memory implementation of Store.
// Use this for tests or ephemeral single-instance deployments.
type MemoryStore struct {
	mu sync.RWMutex

	items     []model.Item
	inventory []model.InventoryRecord
	purchases []model.Purchase

	nextItemID      int64
	nextInventoryID int64
	nextPurchaseID  int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextItemID:      1,
		nextInventoryID: 1,
		nextPurchaseID:  1,
	}
}

// ListItems returns all items.
func (s *MemoryStore) ListItems(ctx context.Context) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, len(s.items))
	copy(items, s.items)
	return items, nil
}

// GetItem returns a single item or ErrItemNotFound.
func (s *MemoryStore) GetItem(ctx context.Context, id int64) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, i := range s.items {
		if i.ID == id {
			return i, nil
		}
	}
	return model.Item{}, ErrItemNotFound
}

// CreateItem persists a new item and returns its assigned id.
func (s *MemoryStore) CreateItem(ctx context.Context, item model.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextItemID
	s.nextItemID++
	s.items = append(s.items, item)
	return item.ID, nil
}

// UpdateItem full-replaces an existing item's mutable fields.
func (s *MemoryStore) UpdateItem(ctx context.Context, item model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == item.ID {
			item.CreatedAt = existing.CreatedAt
			s.items[i] = item
			return nil
		}
	}
	return ErrItemNotFound
}

// DeleteItem removes an item. Deleting an absent id is not an error.
func (s *MemoryStore) DeleteItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListInventory returns all records with the referenced item name resolved.
func (s *MemoryStore) ListInventory(ctx context.Context) ([]model.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make(map[int64]string, len(s.items))
	for _, i := range s.items {
		names[i.ID] = i.Name
	}

	records := make([]model.InventoryRecord, len(s.inventory))
	copy(records, s.inventory)
	for i := range records {
		records[i].ItemName = names[records[i].ItemID]
	}
	return records, nil
}

// CreateInventoryRecord persists a new record and returns its assigned id.
func (s *MemoryStore) CreateInventoryRecord(ctx context.Context, rec model.InventoryRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextInventoryID
	s.nextInventoryID++
	s.inventory = append(s.inventory, rec)
	return rec.ID, nil
}

// UpdateInventoryRecord full-replaces an existing record.
func (s *MemoryStore) UpdateInventoryRecord(ctx context.Context, rec model.InventoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.inventory {
		if existing.ID == rec.ID {
			rec.ItemID = existing.ItemID
			s.inventory[i] = rec
			return nil
		}
	}
	return ErrInventoryRecordNotFound
}

// DeleteInventoryRecord removes a record. Deleting an absent id is not an error.
func (s *MemoryStore) DeleteInventoryRecord(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.inventory {
		if existing.ID == id {
			s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListPurchases returns all purchases with their embedded line items.
func (s *MemoryStore) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchases := make([]model.Purchase, len(s.purchases))
	copy(purchases, s.purchases)
	for i := range purchases {
		lines := make([]model.PurchaseLine, len(purchases[i].Lines))
		copy(lines, purchases[i].Lines)
		purchases[i].Lines = lines
	}
	return purchases, nil
}

// CreatePurchase persists a completed purchase with its lines.
func (s *MemoryStore) CreatePurchase(ctx context.Context, p model.Purchase) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPurchaseID
	s.nextPurchaseID++
	lines := make([]model.PurchaseLine, len(p.Lines))
	copy(lines, p.Lines)
	p.Lines = lines
	s.purchases = append(s.purchases, p)
	return p.ID, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Clear removes all data. Intended for tests.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.inventory = nil
	s.purchases = nil
	s.nextItemID = 1
	s.nextInventoryID = 1
	s.nextPurchaseID = 1
}
