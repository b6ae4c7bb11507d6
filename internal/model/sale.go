package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods accepted at checkout.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
)

// Sale is one checkout: the header row owning its SaleItems. ClientRef is
// set by clients that created the sale offline; the unique index makes
// replaying the same sale idempotent.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SessionID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	ClientRef     *string         `gorm:"uniqueIndex"`
	CreatedAt     time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SaleItem is one distinct product line of a sale. PriceAtSale is fixed at
// checkout time and never revised, decoupling historical revenue from
// later catalog price edits.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int             `gorm:"not null"`
	PriceAtSale decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (i *SaleItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
