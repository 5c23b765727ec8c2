package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItem is a single cart line as submitted by the caller.
// Not persisted.
type CheckoutItem struct {
	ProductID uint64 `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutLine is a resolved cart line with its computed subtotal.
type CheckoutLine struct {
	ProductID uint64          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CheckoutResult is transient. Only its audit trail survives the request.
type CheckoutResult struct {
	Items     []CheckoutLine  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	OrderID   string          `json:"order_id"`
	CreatedAt time.Time       `json:"created_at"`
}
