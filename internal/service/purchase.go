package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"retail-backoffice-api/internal/cache"
	"retail-backoffice-api/internal/model"
	"retail-backoffice-api/internal/repository"
	"retail-backoffice-api/pkg/apierror"
)

const purchaseListKey = "purchases:list"

// LineInput carries one caller-supplied purchase line.
type LineInput struct {
	ItemName  string   `json:"item_name"`
	Quantity  *int     `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

// PurchaseInput carries a purchase to complete. Total, timestamp and
// status are always derived server-side.
type PurchaseInput struct {
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	Lines           []LineInput `json:"items"`
	PaymentMethod   string      `json:"payment_method"`
	ShippingAddress string      `json:"shipping_address"`
}

// PurchaseService owns validation and persistence for the purchase ledger.
type PurchaseService struct {
	store repository.PurchaseStore
	cache cache.Cache
	ttl   time.Duration
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(store repository.PurchaseStore) *PurchaseService {
	return &PurchaseService{store: store}
}

// SetCache enables read caching of the purchase list.
func (s *PurchaseService) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	s.ttl = ttl
}

// ComposeLine validates one line and derives its total.
func (s *PurchaseService) ComposeLine(in LineInput) (model.PurchaseLine, error) {
	if details := validateLine(in, "items"); len(details) > 0 {
		return model.PurchaseLine{}, apierror.ValidationError("invalid purchase line", details...)
	}
	return composeLine(in), nil
}

func composeLine(in LineInput) model.PurchaseLine {
	return model.PurchaseLine{
		ItemName:  in.ItemName,
		Quantity:  *in.Quantity,
		UnitPrice: *in.UnitPrice,
		Total:     model.LineTotal(*in.Quantity, *in.UnitPrice),
	}
}

func validateLine(in LineInput, field string) []apierror.FieldError {
	var details []apierror.FieldError
	if strings.TrimSpace(in.ItemName) == "" {
		details = append(details, apierror.FieldError{Field: field + ".item_name", Message: "item name is required"})
	}
	if in.Quantity == nil {
		details = append(details, apierror.FieldError{Field: field + ".quantity", Message: "quantity is required"})
	} else if *in.Quantity < 1 {
		details = append(details, apierror.FieldError{Field: field + ".quantity", Message: "quantity must be at least 1"})
	}
	if in.UnitPrice == nil {
		details = append(details, apierror.FieldError{Field: field + ".unit_price", Message: "unit price is required"})
	} else if *in.UnitPrice < 0 {
		details = append(details, apierror.FieldError{Field: field + ".unit_price", Message: "unit price cannot be negative"})
	}
	return details
}

// List returns all purchases with their embedded lines.
func (s *PurchaseService) List(ctx context.Context) ([]model.Purchase, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, purchaseListKey); err == nil {
			var purchases []model.Purchase
			if err := json.Unmarshal(data, &purchases); err == nil {
				return purchases, nil
			}
		}
	}

	purchases, err := s.store.ListPurchases(ctx)
	if err != nil {
		log.Printf("purchases: list failed: %v", err)
		return nil, apierror.InternalError("could not fetch purchases")
	}
	if purchases == nil {
		purchases = []model.Purchase{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(purchases); err == nil {
			_ = s.cache.Set(ctx, purchaseListKey, data, s.ttl)
		}
	}
	return purchases, nil
}

// Complete validates, derives totals, and persists a purchase, returning
// its assigned id. Completion does not check or adjust inventory: the
// cross-entity stock decrement is a deliberate gap awaiting product input
// on location and partial-stock policy.
func (s *PurchaseService) Complete(ctx context.Context, in PurchaseInput) (int64, error) {
	var details []apierror.FieldError
	if strings.TrimSpace(in.CustomerName) == "" {
		details = append(details, apierror.FieldError{Field: "customer_name", Message: "customer name is required"})
	}
	if strings.TrimSpace(in.CustomerEmail) == "" {
		details = append(details, apierror.FieldError{Field: "customer_email", Message: "customer email is required"})
	}
	if len(in.Lines) == 0 {
		details = append(details, apierror.FieldError{Field: "items", Message: "a purchase needs at least one item"})
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.DefaultPaymentMethod
	} else if !model.ValidPaymentMethod(paymentMethod) {
		details = append(details, apierror.FieldError{Field: "payment_method", Message: "unknown payment method"})
	}

	lines := make([]model.PurchaseLine, 0, len(in.Lines))
	for i, lineIn := range in.Lines {
		lineDetails := validateLine(lineIn, fmt.Sprintf("items[%d]", i))
		if len(lineDetails) > 0 {
			details = append(details, lineDetails...)
			continue
		}
		lines = append(lines, composeLine(lineIn))
	}

	if len(details) > 0 {
		return 0, apierror.ValidationError("invalid purchase", details...)
	}

	purchase := model.Purchase{
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		Lines:           lines,
		TotalAmount:     model.PurchaseTotal(lines),
		PaymentMethod:   paymentMethod,
		ShippingAddress: in.ShippingAddress,
		PurchaseDate:    time.Now().UTC(),
		Status:          model.PurchaseStatusCompleted,
	}

	id, err := s.store.CreatePurchase(ctx, purchase)
	if err != nil {
		log.Printf("purchases: create failed: %v", err)
		return 0, apierror.InternalError("could not record purchase")
	}

	s.invalidate(ctx)
	return id, nil
}

func (s *PurchaseService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, purchaseListKey)
	}
}
