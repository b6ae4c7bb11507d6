package repository

import (
	"context"

	"github.com/Ak3mix/ventas-pro/internal/dto"
	"github.com/Ak3mix/ventas-pro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovementRepository interface {
	// CreateTx appends a movement inside the transaction that applies its
	// stock change. There is no Update or Delete — movements are immutable.
	CreateTx(tx *gorm.DB, m *model.Movement) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.Movement, int64, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Movement, error)
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository { return &movementRepo{db: db} }

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.Movement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.Movement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Movement{}).Preload("Product")

	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var movements []model.Movement
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&movements).Error
	return movements, total, err
}

// ListBySession returns a session's movements in insertion order, with
// product rows joined so reports keep historical names even for
// soft-deleted products.
func (r *movementRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Movement, error) {
	var movements []model.Movement
	err := r.db.WithContext(ctx).Preload("Product").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}
