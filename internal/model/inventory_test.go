package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		minStockLevel int
		want          string
	}{
		{"well above threshold", 100, 5, StatusInStock},
		{"one above threshold", 6, 5, StatusInStock},
		{"exactly at threshold", 5, 5, StatusLowStock},
		{"below threshold", 3, 10, StatusLowStock},
		{"zero quantity", 0, 5, StatusLowStock},
		{"zero threshold zero quantity", 0, 0, StatusLowStock},
		{"zero threshold with stock", 1, 0, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockStatus(tt.quantity, tt.minStockLevel))
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	rec := InventoryRecord{Quantity: 3, MinStockLevel: 10}
	rec.DeriveStatus()
	assert.Equal(t, StatusLowStock, rec.Status)

	rec.Quantity = 25
	rec.DeriveStatus()
	assert.Equal(t, StatusInStock, rec.Status)
}

func TestValidLocation(t *testing.T) {
	for _, loc := range Locations {
		assert.True(t, ValidLocation(loc), loc)
	}
	assert.False(t, ValidLocation("Rooftop"))
	assert.False(t, ValidLocation(""))
}
