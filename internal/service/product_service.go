package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Ak3mix/ventas-pro/internal/dto"
	"github.com/Ak3mix/ventas-pro/internal/model"
	"github.com/Ak3mix/ventas-pro/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const priceCacheTTL = 4 * time.Hour

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Price is a read-only lookup, served from the cache when one is
	// configured. Update and Delete invalidate the cached entry.
	Price(ctx context.Context, id uuid.UUID) (*dto.PriceResponse, error)
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client // nil when no cache is configured
	mu   *sync.Mutex
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client, mu *sync.Mutex) ProductService {
	return &productService{repo: repo, rdb: rdb, mu: mu}
}

// ── Create ────────────────────────────────────────────────────────────────────

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name, err := validateProductFields(req.Name, req.Price, req.InitialStock)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &model.Product{
		Name:         name,
		Price:        req.Price,
		Stock:        req.InitialStock,
		InitialStock: req.InitialStock,
		Active:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, &StorageError{Op: "create product", Err: err}
	}
	return productToResponse(p), nil
}

// ── Get / List ────────────────────────────────────────────────────────────────

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &StorageError{Op: "list products", Err: err}
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Update ────────────────────────────────────────────────────────────────────
// Direct overwrite of name/price/stock. Known audit gap, kept on purpose:
// a stock correction made here leaves no movement row.

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	name, err := validateProductFields(req.Name, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.repo.UpdateRow(ctx, id, name, req.Price, req.Stock)
	if err != nil {
		return nil, &StorageError{Op: "update product", Err: err}
	}
	if rows == 0 {
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	s.invalidatePrice(ctx, id)

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "reload product", Err: err}
	}
	return productToResponse(p), nil
}

// ── Delete ────────────────────────────────────────────────────────────────────

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return &StorageError{Op: "delete product", Err: err}
	}
	if rows == 0 {
		return &NotFoundError{Entity: "product", ID: id}
	}
	s.invalidatePrice(ctx, id)
	return nil
}

// ── Price ─────────────────────────────────────────────────────────────────────

func (s *productService) Price(ctx context.Context, id uuid.UUID) (*dto.PriceResponse, error) {
	key := priceCacheKey(id)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp dto.PriceResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.PriceResponse{Name: p.Name, Price: p.Price, Stock: p.Stock}

	// Populate cache — best effort, ignore errors.
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, key, b, priceCacheTTL).Err()
		}
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *productService) findActive(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: id}
		}
		return nil, &StorageError{Op: "find product", Err: err}
	}
	if !p.Active {
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	return p, nil
}

func (s *productService) invalidatePrice(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, priceCacheKey(id)).Err()
}

func priceCacheKey(id uuid.UUID) string { return "price:" + id.String() }

func validateProductFields(name string, price decimal.Decimal, stock int) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &InvalidArgumentError{Field: "name", Reason: "must not be empty"}
	}
	if price.IsNegative() {
		return "", &InvalidArgumentError{Field: "price", Reason: "must not be negative"}
	}
	if stock < 0 {
		return "", &InvalidArgumentError{Field: "stock", Reason: "must not be negative"}
	}
	return trimmed, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Price:        p.Price,
		Stock:        p.Stock,
		InitialStock: p.InitialStock,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
