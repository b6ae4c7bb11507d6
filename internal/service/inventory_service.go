package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Ak3mix/ventas-pro/internal/dto"
	"github.com/Ak3mix/ventas-pro/internal/model"
	"github.com/Ak3mix/ventas-pro/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService records manual stock movements (entry/waste) and lists
// the audit trail. Sale movements are written by SaleService as part of
// checkout — never through RecordMovement.
type InventoryService interface {
	RecordMovement(ctx context.Context, req dto.RecordMovementRequest) (*dto.MovementResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type inventoryService struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	sessions  SessionService
	mu        *sync.Mutex
}

func NewInventoryService(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	sessions SessionService,
	mu *sync.Mutex,
) InventoryService {
	return &inventoryService{products: products, movements: movements, sessions: sessions, mu: mu}
}

// ── RecordMovement ────────────────────────────────────────────────────────────
// Atomically: stock += quantity (entry) or stock -= quantity (waste), plus
// one movement row stamped with the current session. A waste that would
// drive stock negative fails with InsufficientStock and changes nothing.

func (s *inventoryService) RecordMovement(ctx context.Context, req dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if req.Kind != model.MovementEntry && req.Kind != model.MovementWaste {
		return nil, &InvalidArgumentError{Field: "kind", Reason: "must be entry or waste"}
	}
	if req.Quantity <= 0 {
		return nil, &InvalidArgumentError{Field: "quantity", Reason: "must be positive"}
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &InvalidArgumentError{Field: "product_id", Reason: "must be a valid UUID"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var mov model.Movement
	txErr := runTx(ctx, s.products.DB(), "record movement", func(tx *gorm.DB) error {
		p, err := s.products.FindByIDTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "product", ID: productID}
			}
			return &StorageError{Op: "find product", Err: err}
		}
		if !p.Active {
			return &NotFoundError{Entity: "product", ID: productID}
		}

		delta := req.Quantity
		if req.Kind == model.MovementWaste {
			if p.Stock < req.Quantity {
				return &InsufficientStockError{
					ProductID: p.ID,
					Product:   p.Name,
					Requested: req.Quantity,
					Available: p.Stock,
				}
			}
			delta = -req.Quantity
		}

		sess, err := s.sessions.CurrentTx(tx)
		if err != nil {
			return err
		}
		if err := s.products.UpdateStockTx(tx, productID, delta); err != nil {
			return &StorageError{Op: "update stock", Err: err}
		}

		mov = model.Movement{
			SessionID:   sess.ID,
			ProductID:   productID,
			Kind:        req.Kind,
			Quantity:    req.Quantity,
			StockBefore: p.Stock,
			StockAfter:  p.Stock + delta,
			Reason:      req.Reason,
		}
		if err := s.movements.CreateTx(tx, &mov); err != nil {
			return &StorageError{Op: "create movement", Err: err}
		}
		mov.Product = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return movementToResponse(&mov), nil
}

// ── ListMovements ─────────────────────────────────────────────────────────────

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, &StorageError{Op: "list movements", Err: err}
	}
	data := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		data = append(data, *movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movementToResponse(m *model.Movement) *dto.MovementResponse {
	name := ""
	if m.Product != nil {
		name = m.Product.Name
	}
	return &dto.MovementResponse{
		ID:          m.ID.String(),
		SessionID:   m.SessionID.String(),
		ProductID:   m.ProductID.String(),
		Product:     name,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}
