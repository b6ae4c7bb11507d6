package dto

// RecordMovementRequest registers a manual stock change. Sale movements
// cannot be created here — they are a side effect of checkout.
type RecordMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Kind      string `json:"kind"       validate:"required,oneof=entry waste"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	Reason    string `json:"reason"     validate:"max=250"`
}

type MovementFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Kind      string `form:"kind"       validate:"omitempty,oneof=entry waste sale"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovementResponse struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	ProductID   string `json:"product_id"`
	Product     string `json:"product"`
	Kind        string `json:"kind"`
	Quantity    int    `json:"quantity"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	Reason      string `json:"reason,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
