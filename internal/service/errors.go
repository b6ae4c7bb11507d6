package service

import (
	"fmt"

	"github.com/google/uuid"
)

// Typed failures of the ledger engine. Handlers translate these into HTTP
// statuses; callers distinguish them with errors.As instead of matching
// message text. Every mutating operation is all-or-nothing: any of these
// errors means no state change happened.

// InvalidArgumentError reports malformed or out-of-range input. The caller
// can recover by correcting the request.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced entity does not exist or has
// been soft-deleted.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InsufficientStockError reports a waste or sale that would drive a
// product's stock negative. It names the product and the requested vs.
// available quantities.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.Product, e.Requested, e.Available)
}

// StorageError wraps a datastore failure. Whatever the operation staged
// was rolled back; the caller should treat it as not-happened and may retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
