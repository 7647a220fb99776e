package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"retail-backoffice-api/internal/cache"
	"retail-backoffice-api/internal/model"
	"retail-backoffice-api/internal/repository"
	"retail-backoffice-api/pkg/apierror"
)

const inventoryListKey = "inventory:list"

// InventoryInput carries caller-supplied inventory fields. Quantity and
// MinStockLevel are pointers so absent values can be told apart from zero.
// There is no status field: status is always derived server-side from
// quantity and the minimum stock level.
type InventoryInput struct {
	ItemID        int64  `json:"item_id"`
	Quantity      *int   `json:"quantity"`
	MinStockLevel *int   `json:"min_stock_level"`
	Location      string `json:"location"`
}

// InventoryService owns validation and persistence for inventory records.
type InventoryService struct {
	store repository.InventoryStore
	items repository.ItemStore
	cache cache.Cache
	ttl   time.Duration
}

// NewInventoryService creates a new inventory service. The item store is
// used to resolve the record's item reference.
func NewInventoryService(store repository.InventoryStore, items repository.ItemStore) *InventoryService {
	return &InventoryService{store: store, items: items}
}

// SetCache enables read caching of the inventory list.
func (s *InventoryService) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	s.ttl = ttl
}

func validateInventory(in InventoryInput) []apierror.FieldError {
	var details []apierror.FieldError
	if in.Quantity == nil {
		details = append(details, apierror.FieldError{Field: "quantity", Message: "quantity is required"})
	} else if *in.Quantity < 0 {
		details = append(details, apierror.FieldError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if in.MinStockLevel != nil && *in.MinStockLevel < 0 {
		details = append(details, apierror.FieldError{Field: "min_stock_level", Message: "minimum stock level cannot be negative"})
	}
	if in.Location == "" {
		details = append(details, apierror.FieldError{Field: "location", Message: "location is required"})
	} else if !model.ValidLocation(in.Location) {
		details = append(details, apierror.FieldError{Field: "location", Message: "unknown location"})
	}
	return details
}

// List returns all inventory records with status derived on read.
func (s *InventoryService) List(ctx context.Context) ([]model.InventoryRecord, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, inventoryListKey); err == nil {
			var records []model.InventoryRecord
			if err := json.Unmarshal(data, &records); err == nil {
				return records, nil
			}
		}
	}

	records, err := s.store.ListInventory(ctx)
	if err != nil {
		log.Printf("inventory: list failed: %v", err)
		return nil, apierror.InternalError("could not fetch inventory")
	}
	if records == nil {
		records = []model.InventoryRecord{}
	}
	for i := range records {
		records[i].DeriveStatus()
	}

	if s.cache != nil {
		if data, err := json.Marshal(records); err == nil {
			_ = s.cache.Set(ctx, inventoryListKey, data, s.ttl)
		}
	}
	return records, nil
}

// Create validates and persists a new inventory record, returning its id.
// The item reference must point at an existing item.
func (s *InventoryService) Create(ctx context.Context, in InventoryInput) (int64, error) {
	details := validateInventory(in)
	if in.ItemID <= 0 {
		details = append(details, apierror.FieldError{Field: "item_id", Message: "item_id is required"})
	} else if _, err := s.items.GetItem(ctx, in.ItemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			details = append(details, apierror.FieldError{Field: "item_id", Message: "item_id does not reference an existing item"})
		} else {
			log.Printf("inventory: item lookup failed: %v", err)
			return 0, apierror.InternalError("could not create inventory record")
		}
	}
	if len(details) > 0 {
		return 0, apierror.ValidationError("invalid inventory record", details...)
	}

	rec := model.InventoryRecord{
		ItemID:        in.ItemID,
		Quantity:      *in.Quantity,
		MinStockLevel: minStockLevel(in.MinStockLevel),
		Location:      in.Location,
		LastUpdated:   time.Now().UTC(),
	}

	id, err := s.store.CreateInventoryRecord(ctx, rec)
	if err != nil {
		log.Printf("inventory: create failed: %v", err)
		return 0, apierror.InternalError("could not create inventory record")
	}

	s.invalidate(ctx)
	return id, nil
}

// Update validates and full-replaces an existing record. The item
// reference is not updatable; status is rederived on the next read.
func (s *InventoryService) Update(ctx context.Context, id int64, in InventoryInput) error {
	if details := validateInventory(in); len(details) > 0 {
		return apierror.ValidationError("invalid inventory record", details...)
	}

	rec := model.InventoryRecord{
		ID:            id,
		Quantity:      *in.Quantity,
		MinStockLevel: minStockLevel(in.MinStockLevel),
		Location:      in.Location,
		LastUpdated:   time.Now().UTC(),
	}

	if err := s.store.UpdateInventoryRecord(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrInventoryRecordNotFound) {
			return apierror.NotFound("inventory record not found")
		}
		log.Printf("inventory: update failed: %v", err)
		return apierror.InternalError("could not update inventory record")
	}

	s.invalidate(ctx)
	return nil
}

// Delete removes a record. Deleting an absent id succeeds silently.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteInventoryRecord(ctx, id); err != nil {
		log.Printf("inventory: delete failed: %v", err)
		return apierror.InternalError("could not delete inventory record")
	}

	s.invalidate(ctx)
	return nil
}

func minStockLevel(level *int) int {
	if level == nil {
		return model.DefaultMinStockLevel
	}
	return *level
}

func (s *InventoryService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, inventoryListKey)
	}
}
