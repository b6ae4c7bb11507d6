package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a bounded accounting period ("business day"). Invariant: at
// most one row has Closed=false at any time. Sessions transition
// OPEN → CLOSED exactly once and are never deleted; closing a session
// always creates its replacement in the same transaction.
type Session struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OpenedAt time.Time `gorm:"not null"`
	ClosedAt *time.Time
	Closed   bool `gorm:"not null;default:false;index"`

	Movements []Movement `gorm:"foreignKey:SessionID"`
	Sales     []Sale     `gorm:"foreignKey:SessionID"`
}

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.OpenedAt.IsZero() {
		s.OpenedAt = time.Now()
	}
	return nil
}
