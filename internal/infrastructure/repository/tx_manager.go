package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/kayatek/servis-api/internal/domain/repository"
)

type contextKey string

const txKey contextKey = "gorm_tx"

type transactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a transaction manager backed by gorm
// transactions with context injection.
func NewTransactionManager(db *gorm.DB) domainRepo.TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// dbFrom returns the transaction handle injected into ctx, or the root DB
// when no transaction is active.
func dbFrom(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
