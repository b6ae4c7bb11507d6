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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// saleReason is the movement reason stamped on every checkout-derived
// stock decrement.
const saleReason = "Venta"

type SaleService interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error)
	SyncBatch(ctx context.Context, req dto.SyncBatchRequest) ([]dto.SyncResult, error)
}

type saleService struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	movements repository.MovementRepository
	sessions  SessionService
	mu        *sync.Mutex
}

func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	movements repository.MovementRepository,
	sessions SessionService,
	mu *sync.Mutex,
) SaleService {
	return &saleService{sales: sales, products: products, movements: movements, sessions: sessions, mu: mu}
}

// ── Checkout ──────────────────────────────────────────────────────────────────
// One ACID transaction: sale header, one item + stock decrement + sale
// movement per distinct product, in item order. If any item fails its
// stock check the whole transaction rolls back — including rows already
// staged for earlier items — and InsufficientStock names the offender.

func (s *saleService) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	parsed, err := parseCheckout(req)
	if err != nil {
		return nil, err
	}

	// Idempotent replay of offline-created sales.
	if req.ClientRef != nil {
		if existing, err := s.sales.FindByClientRef(ctx, *req.ClientRef); err == nil {
			return saleToResponse(existing, nil), nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var sale model.Sale
	names := make(map[uuid.UUID]string, len(parsed))
	txErr := runTx(ctx, s.sales.DB(), "checkout", func(tx *gorm.DB) error {
		sess, err := s.sessions.CurrentTx(tx)
		if err != nil {
			return err
		}

		sale = model.Sale{
			SessionID:     sess.ID,
			Total:         req.Total,
			PaymentMethod: req.PaymentMethod,
			ClientRef:     req.ClientRef,
		}
		for _, it := range parsed {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:   it.productID,
				Quantity:    it.quantity,
				PriceAtSale: it.unitPrice,
			})
		}
		if err := s.sales.CreateTx(tx, &sale); err != nil {
			return &StorageError{Op: "create sale", Err: err}
		}

		for _, it := range parsed {
			p, err := s.products.FindByIDTx(tx, it.productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "product", ID: it.productID}
				}
				return &StorageError{Op: "find product", Err: err}
			}
			if !p.Active {
				return &NotFoundError{Entity: "product", ID: it.productID}
			}
			if p.Stock < it.quantity {
				return &InsufficientStockError{
					ProductID: p.ID,
					Product:   p.Name,
					Requested: it.quantity,
					Available: p.Stock,
				}
			}
			if err := s.products.UpdateStockTx(tx, it.productID, -it.quantity); err != nil {
				return &StorageError{Op: "update stock", Err: err}
			}
			mov := model.Movement{
				SessionID:   sess.ID,
				ProductID:   it.productID,
				Kind:        model.MovementSale,
				Quantity:    it.quantity,
				StockBefore: p.Stock,
				StockAfter:  p.Stock - it.quantity,
				Reason:      saleReason,
			}
			if err := s.movements.CreateTx(tx, &mov); err != nil {
				return &StorageError{Op: "create sale movement", Err: err}
			}
			names[p.ID] = p.Name
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return saleToResponse(&sale, names), nil
}

// ── SyncBatch ─────────────────────────────────────────────────────────────────
// Reconciles a batch of offline sales in order. Each element is an
// ordinary checkout; a previously seen client_ref is reported as a
// duplicate, and a rejected element does not stop the rest of the batch.

func (s *saleService) SyncBatch(ctx context.Context, req dto.SyncBatchRequest) ([]dto.SyncResult, error) {
	results := make([]dto.SyncResult, 0, len(req.Sales))
	for _, checkout := range req.Sales {
		if checkout.ClientRef == nil {
			results = append(results, dto.SyncResult{
				Status: "rejected",
				Error:  "client_ref is required for offline sales",
			})
			continue
		}
		ref := *checkout.ClientRef

		if existing, err := s.sales.FindByClientRef(ctx, ref); err == nil {
			results = append(results, dto.SyncResult{
				ClientRef: ref,
				SaleID:    existing.ID.String(),
				Status:    "duplicate",
			})
			continue
		}

		resp, err := s.Checkout(ctx, checkout)
		if err != nil {
			results = append(results, dto.SyncResult{
				ClientRef: ref,
				Status:    "rejected",
				Error:     err.Error(),
			})
			continue
		}
		results = append(results, dto.SyncResult{
			ClientRef: ref,
			SaleID:    resp.ID,
			Status:    "applied",
		})
	}
	return results, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type checkoutItem struct {
	productID uuid.UUID
	quantity  int
	unitPrice decimal.Decimal
}

func parseCheckout(req dto.CheckoutRequest) ([]checkoutItem, error) {
	if len(req.Items) == 0 {
		return nil, &InvalidArgumentError{Field: "items", Reason: "must not be empty"}
	}
	if req.PaymentMethod != model.PaymentCash && req.PaymentMethod != model.PaymentTransfer {
		return nil, &InvalidArgumentError{Field: "payment_method", Reason: "must be cash or transfer"}
	}
	if req.Total.IsNegative() {
		return nil, &InvalidArgumentError{Field: "total", Reason: "must not be negative"}
	}

	parsed := make([]checkoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, &InvalidArgumentError{Field: "items.product_id", Reason: "must be a valid UUID"}
		}
		if it.Quantity <= 0 {
			return nil, &InvalidArgumentError{Field: "items.quantity", Reason: "must be positive"}
		}
		if it.UnitPrice.IsNegative() {
			return nil, &InvalidArgumentError{Field: "items.unit_price", Reason: "must not be negative"}
		}
		parsed = append(parsed, checkoutItem{productID: id, quantity: it.Quantity, unitPrice: it.UnitPrice})
	}
	return parsed, nil
}

// saleToResponse renders a sale. Product names come from loaded Product
// associations when present, or from the names collected during checkout.
func saleToResponse(s *model.Sale, names map[uuid.UUID]string) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		name := names[item.ProductID]
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			Product:     name,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID.String(),
		SessionID:     s.SessionID.String(),
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Items:         items,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}
