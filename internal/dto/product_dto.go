package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required,max=120"`
	Price        decimal.Decimal `json:"price"         validate:"min=0"`
	InitialStock int             `json:"initial_stock" validate:"min=0"`
}

// UpdateProductRequest overwrites name, price and stock directly. This is
// a correction mechanism, not a movement — it leaves no audit trail row.
type UpdateProductRequest struct {
	Name  string          `json:"name"  validate:"required,max=120"`
	Price decimal.Decimal `json:"price" validate:"min=0"`
	Stock int             `json:"stock" validate:"min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	InitialStock int             `json:"initial_stock"`
	Active       bool            `json:"active"`
	CreatedAt    string          `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceResponse is returned by the read-only price check endpoint.
type PriceResponse struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}
