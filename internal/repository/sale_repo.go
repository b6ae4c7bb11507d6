package repository

import (
	"context"

	"github.com/Ak3mix/ventas-pro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// CreateTx inserts the sale header and its items in one statement
	// batch, inside the checkout transaction.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindByClientRef(ctx context.Context, ref string) (*model.Sale, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Sale, error)
	TotalsByMethod(ctx context.Context, sessionID uuid.UUID) (map[string]decimal.Decimal, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items.Product").Where("id = ?", id).First(&s).Error
	return &s, err
}

func (r *saleRepo) FindByClientRef(ctx context.Context, ref string) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items.Product").Where("client_ref = ?", ref).First(&s).Error
	return &s, err
}

func (r *saleRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items.Product").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) TotalsByMethod(ctx context.Context, sessionID uuid.UUID) (map[string]decimal.Decimal, error) {
	var rows []struct {
		PaymentMethod string
		Total         decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("payment_method, SUM(total) AS total").
		Where("session_id = ?", sessionID).
		Group("payment_method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := map[string]decimal.Decimal{
		model.PaymentCash:     decimal.Zero,
		model.PaymentTransfer: decimal.Zero,
	}
	for _, row := range rows {
		totals[row.PaymentMethod] = row.Total
	}
	return totals, nil
}
