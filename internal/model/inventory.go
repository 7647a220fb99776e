package model

import "time"

// Stock status values derived from quantity vs. minimum stock level.
const (
	StatusInStock  = "In Stock"
	StatusLowStock = "Low Stock"
)

// DefaultMinStockLevel is used when a record is created without one.
const DefaultMinStockLevel = 5

// InventoryRecord tracks stock for an item at a location.
// Status is never stored; it is derived from quantity and the minimum
// stock level on every read.
type InventoryRecord struct {
	ID            int64     `json:"id"`
	ItemID        int64     `json:"item_id"`
	ItemName      string    `json:"item_name,omitempty"`
	Quantity      int       `json:"quantity"`
	MinStockLevel int       `json:"min_stock_level"`
	Location      string    `json:"location"`
	Status        string    `json:"status"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Locations is the set of valid stock locations.
var Locations = []string{
	"Warehouse A",
	"Warehouse B",
	"Store Front",
	"Back Office",
	"Display Area",
}

// ValidLocation reports whether l is one of the known locations.
func ValidLocation(l string) bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// StockStatus classifies on-hand quantity against the minimum stock level.
func StockStatus(quantity, minStockLevel int) string {
	if quantity <= minStockLevel {
		return StatusLowStock
	}
	return StatusInStock
}

// DeriveStatus recomputes the record's status in place.
func (r *InventoryRecord) DeriveStatus() {
	r.Status = StockStatus(r.Quantity, r.MinStockLevel)
}
