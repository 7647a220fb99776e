package model

import "time"

// PurchaseStatusCompleted is the only purchase status in this version.
// Purchases are append-only once completed.
const PurchaseStatusCompleted = "Completed"

// DefaultPaymentMethod is used when no payment method is given.
const DefaultPaymentMethod = "Cash"

// PaymentMethods is the set of accepted payment methods.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Digital Wallet",
	"Bank Transfer",
}

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// PurchaseLine is one (item, quantity, unit price) tuple within a purchase.
// ItemName is a snapshot taken at completion time, not a live reference:
// a historical record does not change when the catalog does.
type PurchaseLine struct {
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// LineTotal computes the total for a line.
func LineTotal(quantity int, unitPrice float64) float64 {
	return float64(quantity) * unitPrice
}

// Purchase is a completed sale with its embedded line items.
type Purchase struct {
	ID              int64          `json:"id"`
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	Lines           []PurchaseLine `json:"items"`
	TotalAmount     float64        `json:"total_amount"`
	PaymentMethod   string         `json:"payment_method"`
	ShippingAddress string         `json:"shipping_address,omitempty"`
	PurchaseDate    time.Time      `json:"purchase_date"`
	Status          string         `json:"status"`
}

// PurchaseTotal sums the line totals.
func PurchaseTotal(lines []PurchaseLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Total
	}
	return total
}
