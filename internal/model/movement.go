package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement kinds. Entry and waste come in through the movements endpoint;
// sale movements are written only as part of a checkout transaction.
const (
	MovementEntry = "entry"
	MovementWaste = "waste"
	MovementSale  = "sale"
)

// Movement is an append-only audit record: one row per stock-affecting
// event, stamped with the session that was open at the time. Movements
// are NEVER modified or deleted. Quantity is always positive — the
// direction is carried by Kind, and StockBefore/StockAfter snapshot the
// product's stock around the event.
type Movement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        string    `gorm:"type:varchar(10);not null"`
	Quantity    int       `gorm:"not null"`
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (m *Movement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
