package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Ak3mix/ventas-pro/internal/apierror"
	"github.com/Ak3mix/ventas-pro/internal/middleware"
	"github.com/Ak3mix/ventas-pro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeServiceError maps typed engine errors to HTTP statuses. Storage
// failures are logged with the request id and collapsed to a generic 500.
func writeServiceError(c *gin.Context, err error) {
	var (
		invalid      *service.InvalidArgumentError
		notFound     *service.NotFoundError
		insufficient *service.InsufficientStockError
	)
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apierror.NewStockConflict(
			err.Error(), insufficient.Product, insufficient.Requested, insufficient.Available))
	default:
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("storage error")
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
