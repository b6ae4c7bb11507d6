package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ak3mix/ventas-pro/internal/dto"
	"github.com/Ak3mix/ventas-pro/internal/model"
	"github.com/Ak3mix/ventas-pro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() { gin.SetMode(gin.TestMode) }

// ─── Service stubs ───────────────────────────────────────────────────────────

type stubProductService struct {
	createFn func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubProductService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	return s.createFn(ctx, req)
}
func (s *stubProductService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	return s.getFn(ctx, id)
}
func (s *stubProductService) List(context.Context, dto.ProductFilter) (*dto.ProductListResponse, error) {
	return &dto.ProductListResponse{Data: []dto.ProductResponse{}}, nil
}
func (s *stubProductService) Update(context.Context, uuid.UUID, dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	return nil, errors.New("not stubbed")
}
func (s *stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *stubProductService) Price(context.Context, uuid.UUID) (*dto.PriceResponse, error) {
	return nil, errors.New("not stubbed")
}

type stubInventoryService struct {
	recordFn func(ctx context.Context, req dto.RecordMovementRequest) (*dto.MovementResponse, error)
}

func (s *stubInventoryService) RecordMovement(ctx context.Context, req dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	return s.recordFn(ctx, req)
}
func (s *stubInventoryService) ListMovements(context.Context, dto.MovementFilter) (*dto.MovementListResponse, error) {
	return &dto.MovementListResponse{Data: []dto.MovementResponse{}}, nil
}

type stubSaleService struct {
	checkoutFn func(ctx context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error)
}

func (s *stubSaleService) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	return s.checkoutFn(ctx, req)
}
func (s *stubSaleService) SyncBatch(context.Context, dto.SyncBatchRequest) ([]dto.SyncResult, error) {
	return nil, errors.New("not stubbed")
}

type stubSessionService struct {
	currentFn func(ctx context.Context) (*dto.SessionResponse, error)
	closeFn   func(ctx context.Context) (*dto.CloseSessionResponse, error)
}

func (s *stubSessionService) Current(ctx context.Context) (*dto.SessionResponse, error) {
	return s.currentFn(ctx)
}
func (s *stubSessionService) Close(ctx context.Context) (*dto.CloseSessionResponse, error) {
	return s.closeFn(ctx)
}
func (s *stubSessionService) ListClosed(context.Context) ([]dto.SessionResponse, error) {
	return nil, errors.New("not stubbed")
}
func (s *stubSessionService) Report(context.Context, uuid.UUID) (*dto.SessionReportResponse, error) {
	return nil, errors.New("not stubbed")
}
func (s *stubSessionService) CurrentTx(*gorm.DB) (*model.Session, error) { return nil, nil }

// ─── Helpers ─────────────────────────────────────────────────────────────────

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestCreateProductStatusCodes(t *testing.T) {
	svc := &stubProductService{
		createFn: func(_ context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
			return &dto.ProductResponse{ID: uuid.NewString(), Name: req.Name, Active: true}, nil
		},
	}
	r := gin.New()
	r.POST("/products", NewProductsHandler(svc).Create)

	w := doRequest(r, http.MethodPost, "/products", `{"name":"Yerba","price":"3500.00","initial_stock":10}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Malformed JSON
	w = doRequest(r, http.MethodPost, "/products", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing required name
	w = doRequest(r, http.MethodPost, "/products", `{"price":"100"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetProductErrorMapping(t *testing.T) {
	missing := uuid.New()
	svc := &stubProductService{
		getFn: func(_ context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
			return nil, &service.NotFoundError{Entity: "product", ID: id}
		},
	}
	r := gin.New()
	r.GET("/products/:id", NewProductsHandler(svc).Get)

	w := doRequest(r, http.MethodGet, "/products/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/products/"+missing.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "not found")
}

func TestDeleteProductNoContent(t *testing.T) {
	svc := &stubProductService{
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}
	r := gin.New()
	r.DELETE("/products/:id", NewProductsHandler(svc).Delete)

	w := doRequest(r, http.MethodDelete, "/products/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRecordMovementInsufficientStock(t *testing.T) {
	svc := &stubInventoryService{
		recordFn: func(context.Context, dto.RecordMovementRequest) (*dto.MovementResponse, error) {
			return nil, &service.InsufficientStockError{
				ProductID: uuid.New(), Product: "Café", Requested: 5, Available: 2,
			}
		},
	}
	r := gin.New()
	r.POST("/movements", NewMovementsHandler(svc).Record)

	body := `{"product_id":"` + uuid.NewString() + `","kind":"waste","quantity":5}`
	w := doRequest(r, http.MethodPost, "/movements", body)
	require.Equal(t, http.StatusConflict, w.Code)

	var conflict struct {
		Detail    string `json:"detail"`
		Product   string `json:"product"`
		Requested int    `json:"requested"`
		Available int    `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.Equal(t, "Café", conflict.Product)
	assert.Equal(t, 5, conflict.Requested)
	assert.Equal(t, 2, conflict.Available)
}

func TestCheckoutStorageErrorHidesDetails(t *testing.T) {
	svc := &stubSaleService{
		checkoutFn: func(context.Context, dto.CheckoutRequest) (*dto.SaleResponse, error) {
			return nil, &service.StorageError{Op: "create sale", Err: errors.New("disk I/O error")}
		},
	}
	r := gin.New()
	r.POST("/sales", NewSalesHandler(svc).Checkout)

	body := `{"items":[{"product_id":"` + uuid.NewString() + `","quantity":1,"unit_price":"100"}],"payment_method":"cash","total":"100"}`
	w := doRequest(r, http.MethodPost, "/sales", body)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk I/O")
}

func TestCheckoutCreated(t *testing.T) {
	svc := &stubSaleService{
		checkoutFn: func(_ context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
			return &dto.SaleResponse{
				ID:            uuid.NewString(),
				Total:         req.Total,
				PaymentMethod: req.PaymentMethod,
			}, nil
		},
	}
	r := gin.New()
	r.POST("/sales", NewSalesHandler(svc).Checkout)

	body := `{"items":[{"product_id":"` + uuid.NewString() + `","quantity":2,"unit_price":"50"}],"payment_method":"transfer","total":"100"}`
	w := doRequest(r, http.MethodPost, "/sales", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.SaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "transfer", resp.PaymentMethod)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("100")))
}

func TestSessionEndpoints(t *testing.T) {
	open := &dto.SessionResponse{ID: uuid.NewString(), OpenedAt: "2026-08-31T09:00:00Z"}
	svc := &stubSessionService{
		currentFn: func(context.Context) (*dto.SessionResponse, error) { return open, nil },
		closeFn: func(context.Context) (*dto.CloseSessionResponse, error) {
			return &dto.CloseSessionResponse{ClosedID: open.ID, NewID: uuid.NewString()}, nil
		},
	}
	h := NewSessionsHandler(svc)
	r := gin.New()
	r.GET("/sessions/current", h.Current)
	r.POST("/sessions/close", h.Close)

	w := doRequest(r, http.MethodGet, "/sessions/current", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cur dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cur))
	assert.Equal(t, open.ID, cur.ID)

	w = doRequest(r, http.MethodPost, "/sessions/close", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rollover dto.CloseSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rollover))
	assert.Equal(t, open.ID, rollover.ClosedID)
	assert.NotEqual(t, rollover.ClosedID, rollover.NewID)
}
