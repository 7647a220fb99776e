package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	assert.InDelta(t, 59.98, LineTotal(2, 29.99), 1e-9)
	assert.InDelta(t, 0, LineTotal(3, 0), 1e-9)
	assert.InDelta(t, 1500, LineTotal(1, 1500), 1e-9)
}

func TestPurchaseTotal(t *testing.T) {
	lines := []PurchaseLine{
		{ItemName: "Mouse", Quantity: 2, UnitPrice: 29.99, Total: LineTotal(2, 29.99)},
		{ItemName: "Keyboard", Quantity: 1, UnitPrice: 49.50, Total: LineTotal(1, 49.50)},
	}
	assert.InDelta(t, 109.48, PurchaseTotal(lines), 1e-9)
}

func TestPurchaseTotalEmpty(t *testing.T) {
	assert.Zero(t, PurchaseTotal(nil))
}

func TestPurchaseTotalMatchesLines(t *testing.T) {
	lines := []PurchaseLine{
		{Quantity: 4, UnitPrice: 2.5, Total: LineTotal(4, 2.5)},
		{Quantity: 7, UnitPrice: 0.99, Total: LineTotal(7, 0.99)},
		{Quantity: 1, UnitPrice: 999.95, Total: LineTotal(1, 999.95)},
	}
	var sum float64
	for _, l := range lines {
		require.InDelta(t, float64(l.Quantity)*l.UnitPrice, l.Total, 1e-9)
		sum += l.Total
	}
	assert.InDelta(t, sum, PurchaseTotal(lines), 1e-9)
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	assert.False(t, ValidPaymentMethod("IOU"))
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("Vehicles"))
}
