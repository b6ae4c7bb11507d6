package repository

import (
	"context"
	"time"

	"github.com/Ak3mix/ventas-pro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	FindOpen(ctx context.Context) (*model.Session, error)
	ListClosed(ctx context.Context) ([]model.Session, error)

	// Used inside transactions — session creation and rollover must commit
	// atomically with the rows stamped against them.
	CreateTx(tx *gorm.DB, s *model.Session) error
	FindOpenTx(tx *gorm.DB) (*model.Session, error)
	CloseTx(tx *gorm.DB, id uuid.UUID, at time.Time) error

	DB() *gorm.DB
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) DB() *gorm.DB { return r.db }

func (r *sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	return &s, err
}

func (r *sessionRepo) FindOpen(ctx context.Context) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).Where("closed = ?", false).First(&s).Error
	return &s, err
}

func (r *sessionRepo) FindOpenTx(tx *gorm.DB) (*model.Session, error) {
	var s model.Session
	err := tx.Where("closed = ?", false).First(&s).Error
	return &s, err
}

func (r *sessionRepo) ListClosed(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("closed = ?", true).
		Order("closed_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) CreateTx(tx *gorm.DB, s *model.Session) error {
	return tx.Create(s).Error
}

func (r *sessionRepo) CloseTx(tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return tx.Model(&model.Session{}).Where("id = ?", id).
		Updates(map[string]interface{}{"closed": true, "closed_at": at}).Error
}
