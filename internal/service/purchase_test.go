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

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestComposeLine(t *testing.T) {
	svc := NewPurchaseService(repository.NewMemoryStore())

	line, err := svc.ComposeLine(LineInput{ItemName: "Mouse", Quantity: intPtr(2), UnitPrice: floatPtr(29.99)})
	require.NoError(t, err)
	assert.Equal(t, "Mouse", line.ItemName)
	assert.Equal(t, 2, line.Quantity)
	assert.InDelta(t, 59.98, line.Total, 1e-9)
}

func TestComposeLineInvalid(t *testing.T) {
	svc := NewPurchaseService(repository.NewMemoryStore())

	tests := []struct {
		name  string
		in    LineInput
		field string
	}{
		{"missing item name", LineInput{Quantity: intPtr(1), UnitPrice: floatPtr(1)}, "items.item_name"},
		{"missing quantity", LineInput{ItemName: "Mouse", UnitPrice: floatPtr(1)}, "items.quantity"},
		{"zero quantity", LineInput{ItemName: "Mouse", Quantity: intPtr(0), UnitPrice: floatPtr(1)}, "items.quantity"},
		{"missing unit price", LineInput{ItemName: "Mouse", Quantity: intPtr(1)}, "items.unit_price"},
		{"negative unit price", LineInput{ItemName: "Mouse", Quantity: intPtr(1), UnitPrice: floatPtr(-0.01)}, "items.unit_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ComposeLine(tt.in)
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

func TestCompleteDerivesTotalsAndStatus(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewPurchaseService(store)

	id, err := svc.Complete(context.Background(), PurchaseInput{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Lines: []LineInput{
			{ItemName: "Mouse", Quantity: intPtr(2), UnitPrice: floatPtr(29.99)},
			{ItemName: "Keyboard", Quantity: intPtr(1), UnitPrice: floatPtr(49.50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	purchases, err := store.ListPurchases(context.Background())
	require.NoError(t, err)
	require.Len(t, purchases, 1)

	p := purchases[0]
	assert.Equal(t, model.PurchaseStatusCompleted, p.Status)
	assert.Equal(t, model.DefaultPaymentMethod, p.PaymentMethod)
	assert.False(t, p.PurchaseDate.IsZero())
	assert.InDelta(t, 109.48, p.TotalAmount, 1e-9)
	require.Len(t, p.Lines, 2)
	assert.InDelta(t, 59.98, p.Lines[0].Total, 1e-9)
	assert.InDelta(t, 49.50, p.Lines[1].Total, 1e-9)
}

func TestCompleteValidation(t *testing.T) {
	svc := NewPurchaseService(repository.NewMemoryStore())
	line := LineInput{ItemName: "Mouse", Quantity: intPtr(1), UnitPrice: floatPtr(10)}

	tests := []struct {
		name  string
		in    PurchaseInput
		field string
	}{
		{"missing customer name", PurchaseInput{CustomerEmail: "a@b.c", Lines: []LineInput{line}}, "customer_name"},
		{"missing customer email", PurchaseInput{CustomerName: "Ada", Lines: []LineInput{line}}, "customer_email"},
		{"no lines", PurchaseInput{CustomerName: "Ada", CustomerEmail: "a@b.c"}, "items"},
		{"bad payment method", PurchaseInput{CustomerName: "Ada", CustomerEmail: "a@b.c", Lines: []LineInput{line}, PaymentMethod: "IOU"}, "payment_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Complete(context.Background(), tt.in)
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

func TestCompleteInvalidLineIsRejected(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewPurchaseService(store)

	_, err := svc.Complete(context.Background(), PurchaseInput{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Lines: []LineInput{
			{ItemName: "Mouse", Quantity: intPtr(1), UnitPrice: floatPtr(10)},
			{ItemName: "Keyboard", Quantity: intPtr(0), UnitPrice: floatPtr(10)},
		},
	})
	require.Error(t, err)

	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)

	// nothing persisted
	purchases, err := store.ListPurchases(context.Background())
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestCompleteKeepsExplicitPaymentMethod(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewPurchaseService(store)

	_, err := svc.Complete(context.Background(), PurchaseInput{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		PaymentMethod: "Credit Card",
		Lines:         []LineInput{{ItemName: "Mouse", Quantity: intPtr(1), UnitPrice: floatPtr(10)}},
	})
	require.NoError(t, err)

	purchases, err := store.ListPurchases(context.Background())
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Credit Card", purchases[0].PaymentMethod)
}
