// Package store defines the persistence gateway: an opaque key-value
// mirror of the two JSON-encoded collections. Implementations offer no
// transactional guarantees; writes are synchronous and last write wins.
package store

import (
	"context"

	"gestaopro/backend/internal/domain"
)

// Collection keys within a gateway namespace.
const (
	ProductsKey     = "products"
	TransactionsKey = "transactions"
)

type Gateway interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	SaveProducts(ctx context.Context, products []domain.Product) error
	GetTransactions(ctx context.Context) ([]domain.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error
}
