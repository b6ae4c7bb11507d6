package service

import (
	"context"
	"testing"

	"github.com/Ak3mix/ventas-pro/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.products.Create(context.Background(), dto.CreateProductRequest{
		Name:         "  Aceite girasol  ",
		Price:        decimal.RequireFromString("3200.50"),
		InitialStock: 24,
	})
	require.NoError(t, err)

	assert.Equal(t, "Aceite girasol", resp.Name)
	assert.Equal(t, 24, resp.Stock)
	assert.Equal(t, 24, resp.InitialStock)
	assert.True(t, resp.Active)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name:  "   ",
		Price: decimal.RequireFromString("100"),
	})
	var ia *InvalidArgumentError
	require.ErrorAs(t, err, &ia)
	assert.Equal(t, "name", ia.Field)

	_, err = env.products.Create(ctx, dto.CreateProductRequest{
		Name:  "Negativo",
		Price: decimal.RequireFromString("-1"),
	})
	require.ErrorAs(t, err, &ia)
	assert.Equal(t, "price", ia.Field)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProduct(t, "Shampoo", "4500.00", 10)

	updated, err := env.products.Update(ctx, uuid.MustParse(p.ID), dto.UpdateProductRequest{
		Name:  "Shampoo 500ml",
		Price: decimal.RequireFromString("4990.00"),
		Stock: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Shampoo 500ml", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("4990.00")))
	assert.Equal(t, 7, updated.Stock)
}

func TestUpdateProductNegativePrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProduct(t, "Jabón", "900.00", 5)

	_, err := env.products.Update(ctx, uuid.MustParse(p.ID), dto.UpdateProductRequest{
		Name:  "Jabón",
		Price: decimal.RequireFromString("-900.00"),
		Stock: 5,
	})
	var ia *InvalidArgumentError
	require.ErrorAs(t, err, &ia)
	assert.Equal(t, "price", ia.Field)

	// The row is untouched.
	got, err := env.products.Get(ctx, uuid.MustParse(p.ID))
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("900.00")))
}

func TestUpdateUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.products.Update(context.Background(), uuid.New(), dto.UpdateProductRequest{
		Name:  "Fantasma",
		Price: decimal.RequireFromString("1"),
	})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestSoftDeleteHidesProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProduct(t, "Detergente", "1800.00", 3)
	id := uuid.MustParse(p.ID)

	require.NoError(t, env.products.Delete(ctx, id))

	_, err := env.products.Get(ctx, id)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	list, err := env.products.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, list.Total)

	// Deleting twice reports not found, same as updating a deleted row.
	err = env.products.Delete(ctx, id)
	require.ErrorAs(t, err, &nf)

	_, err = env.products.Update(ctx, id, dto.UpdateProductRequest{
		Name:  "Detergente",
		Price: decimal.RequireFromString("1800.00"),
		Stock: 3,
	})
	require.ErrorAs(t, err, &nf)
}

func TestListProductsFiltersByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createProduct(t, "Yerba Amanda", "3500.00", 5)
	env.createProduct(t, "Yerba Taragüí", "3700.00", 5)
	env.createProduct(t, "Mate cocido", "1500.00", 5)

	list, err := env.products.List(ctx, dto.ProductFilter{Name: "yerba"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)

	paged, err := env.products.List(ctx, dto.ProductFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, paged.Total)
	assert.Len(t, paged.Data, 2)
}

func TestPriceLookupWithoutCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProduct(t, "Manteca", "2100.00", 9)

	price, err := env.products.Price(ctx, uuid.MustParse(p.ID))
	require.NoError(t, err)
	assert.Equal(t, "Manteca", price.Name)
	assert.True(t, price.Price.Equal(decimal.RequireFromString("2100.00")))
	assert.Equal(t, 9, price.Stock)

	require.NoError(t, env.products.Delete(ctx, uuid.MustParse(p.ID)))
	_, err = env.products.Price(ctx, uuid.MustParse(p.ID))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
