package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"retail-backoffice-api/internal/cache"
	"retail-backoffice-api/internal/model"
	"retail-backoffice-api/internal/repository"
	"retail-backoffice-api/pkg/apierror"
)

const itemListKey = "items:list"

// ItemInput carries caller-supplied item fields. Price is a pointer so a
// missing price can be told apart from a zero price.
type ItemInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Barcode     string   `json:"barcode"`
}

// ItemService owns validation and persistence for catalog items.
type ItemService struct {
	store repository.ItemStore
	cache cache.Cache
	ttl   time.Duration
}

// NewItemService creates a new item service.
func NewItemService(store repository.ItemStore) *ItemService {
	return &ItemService{store: store}
}

// SetCache enables read caching of the item list.
func (s *ItemService) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	s.ttl = ttl
}

func validateItem(in ItemInput) []apierror.FieldError {
	var details []apierror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		details = append(details, apierror.FieldError{Field: "name", Message: "name is required"})
	}
	if in.Category == "" {
		details = append(details, apierror.FieldError{Field: "category", Message: "category is required"})
	} else if !model.ValidCategory(in.Category) {
		details = append(details, apierror.FieldError{Field: "category", Message: "unknown category"})
	}
	if in.Price == nil {
		details = append(details, apierror.FieldError{Field: "price", Message: "price is required"})
	} else if *in.Price < 0 {
		details = append(details, apierror.FieldError{Field: "price", Message: "price cannot be negative"})
	}
	return details
}

// List returns all items.
func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, itemListKey); err == nil {
			var items []model.Item
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.store.ListItems(ctx)
	if err != nil {
		log.Printf("items: list failed: %v", err)
		return nil, apierror.InternalError("could not fetch items")
	}
	if items == nil {
		items = []model.Item{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = s.cache.Set(ctx, itemListKey, data, s.ttl)
		}
	}
	return items, nil
}

// Create validates and persists a new item, returning its assigned id.
func (s *ItemService) Create(ctx context.Context, in ItemInput) (int64, error) {
	if details := validateItem(in); len(details) > 0 {
		return 0, apierror.ValidationError("invalid item", details...)
	}

	now := time.Now().UTC()
	item := model.Item{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Price:       *in.Price,
		Barcode:     in.Barcode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.store.CreateItem(ctx, item)
	if err != nil {
		log.Printf("items: create failed: %v", err)
		return 0, apierror.InternalError("could not create item")
	}

	s.invalidate(ctx)
	return id, nil
}

// Update validates and full-replaces an existing item's mutable fields.
func (s *ItemService) Update(ctx context.Context, id int64, in ItemInput) error {
	if details := validateItem(in); len(details) > 0 {
		return apierror.ValidationError("invalid item", details...)
	}

	item := model.Item{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Price:       *in.Price,
		Barcode:     in.Barcode,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return apierror.NotFound("item not found")
		}
		log.Printf("items: update failed: %v", err)
		return apierror.InternalError("could not update item")
	}

	s.invalidate(ctx)
	return nil
}

// Delete removes an item. Deleting an absent id succeeds silently so
// idempotent cleanup flows never fail spuriously.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		log.Printf("items: delete failed: %v", err)
		return apierror.InternalError("could not delete item")
	}

	s.invalidate(ctx)
	return nil
}

func (s *ItemService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, itemListKey)
		// Inventory lists embed the resolved item name.
		_ = s.cache.Delete(ctx, inventoryListKey)
	}
}
