package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or
// calls fn(nil) directly when db is nil (unit test mode). Typed engine
// errors returned by fn abort the transaction and pass through untouched;
// anything else is wrapped as a StorageError.
func runTx(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	var err error
	if db == nil {
		err = fn(nil)
	} else {
		err = db.WithContext(ctx).Transaction(fn)
	}
	if err == nil {
		return nil
	}

	var (
		invalid      *InvalidArgumentError
		notFound     *NotFoundError
		insufficient *InsufficientStockError
		storage      *StorageError
	)
	if errors.As(err, &invalid) || errors.As(err, &notFound) ||
		errors.As(err, &insufficient) || errors.As(err, &storage) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
