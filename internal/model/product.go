package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Stock is the only mutable quantity in the
// system; InitialStock is a snapshot taken at creation and never revised.
// Products are never hard-deleted: Active=false hides them from catalog
// listings while historical movements and sale items keep joinable rows.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"index;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock        int             `gorm:"not null;default:0"`
	InitialStock int             `gorm:"not null;default:0"`
	Active       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeCreate assigns the UUID primary key; SQLite has no server-side
// UUID generation.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
