package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Ak3mix/ventas-pro/internal/dto"
	"github.com/Ak3mix/ventas-pro/internal/infra"
	"github.com/Ak3mix/ventas-pro/internal/model"
	"github.com/Ak3mix/ventas-pro/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service graph over an in-memory SQLite store,
// the same way the composition root does in production.
type testEnv struct {
	db        *gorm.DB
	products  ProductService
	inventory InventoryService
	sales     SaleService
	sessions  SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A fresh connection to an in-memory SQLite database sees a fresh,
	// empty database, so the pool must stay at one connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.Migrate(db))

	productRepo := repository.NewProductRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	var mu sync.Mutex
	sessions := NewSessionService(sessionRepo, saleRepo, movementRepo, &mu)
	return &testEnv{
		db:        db,
		products:  NewProductService(productRepo, nil, &mu),
		inventory: NewInventoryService(productRepo, movementRepo, sessions, &mu),
		sales:     NewSaleService(saleRepo, productRepo, movementRepo, sessions, &mu),
		sessions:  sessions,
	}
}

func (e *testEnv) createProduct(t *testing.T, name, price string, stock int) *dto.ProductResponse {
	t.Helper()
	resp, err := e.products.Create(context.Background(), dto.CreateProductRequest{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		InitialStock: stock,
	})
	require.NoError(t, err)
	return resp
}

// stockOf reads the stored stock directly, bypassing the service layer.
func (e *testEnv) stockOf(t *testing.T, id string) int {
	t.Helper()
	var p model.Product
	require.NoError(t, e.db.First(&p, "id = ?", uuid.MustParse(id)).Error)
	return p.Stock
}

func (e *testEnv) countRows(t *testing.T, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(value).Count(&n).Error)
	return n
}

func newCheckoutItem(productID string, qty int, price string) dto.CheckoutItemRequest {
	return dto.CheckoutItemRequest{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}
