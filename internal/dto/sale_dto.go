package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CheckoutItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
	// Name is the client's catalog snapshot of the product name, used only
	// for display; the stored name is authoritative.
	Name string `json:"name"`
}

type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string                `json:"payment_method" validate:"required,oneof=cash transfer"`
	Total         decimal.Decimal       `json:"total"          validate:"min=0"`
	// ClientRef is set by clients replaying a sale created offline; a
	// previously seen ref returns the stored sale instead of a duplicate.
	ClientRef *string `json:"client_ref" validate:"omitempty,uuid"`
}

// SyncBatchRequest holds offline sales to reconcile, in creation order.
type SyncBatchRequest struct {
	Sales []CheckoutRequest `json:"sales" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	Product     string          `json:"product"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	SessionID     string             `json:"session_id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

// SyncResult reports the outcome of one batch element. Status is one of
// "applied", "duplicate" or "rejected".
type SyncResult struct {
	ClientRef string `json:"client_ref"`
	SaleID    string `json:"sale_id,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
