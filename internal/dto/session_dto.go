package dto

import "github.com/shopspring/decimal"

type SessionResponse struct {
	ID       string  `json:"id"`
	OpenedAt string  `json:"opened_at"`
	ClosedAt *string `json:"closed_at,omitempty"`
	Closed   bool    `json:"closed"`
}

// CloseSessionResponse identifies both halves of a session rollover.
type CloseSessionResponse struct {
	ClosedID string `json:"closed_id"`
	NewID    string `json:"new_id"`
}

// SessionReportResponse aggregates everything recorded against one
// session: its sales, its stock movements (with product names), and
// totals broken down by payment method.
type SessionReportResponse struct {
	Session        SessionResponse            `json:"session"`
	Sales          []SaleResponse             `json:"sales"`
	Movements      []MovementResponse         `json:"movements"`
	TotalsByMethod map[string]decimal.Decimal `json:"totals_by_method"`
	Total          decimal.Decimal            `json:"total"`
}
