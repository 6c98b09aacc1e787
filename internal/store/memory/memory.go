// Package memory is the in-process gateway used for dev/demo mode and in
// tests. It keeps deep copies on both read and write so callers can never
// alias the stored slices.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"gestaopro/backend/internal/domain"
)

type Store struct {
	mu           sync.RWMutex
	products     []domain.Product
	transactions []domain.Transaction
}

// New returns an empty gateway: both collections read as empty slices
// until the first save.
func New() *Store {
	return &Store{}
}

// NewSeeded returns a gateway preloaded with the three demo products the
// original app shipped with. The transaction log starts empty.
func NewSeeded() *Store {
	return &Store{
		products: []domain.Product{
			{
				ID:            "prod-seed-1",
				Name:          "Camiseta Algodão",
				SKU:           "CAM-001",
				Category:      "Roupas",
				PurchasePrice: decimal.NewFromFloat(25.00),
				Price:         decimal.NewFromFloat(59.90),
				Stock:         45,
				MinStock:      10,
			},
			{
				ID:            "prod-seed-2",
				Name:          "Calça Jeans Slim",
				SKU:           "CAL-002",
				Category:      "Roupas",
				PurchasePrice: decimal.NewFromFloat(60.00),
				Price:         decimal.NewFromFloat(129.90),
				Stock:         12,
				MinStock:      5,
			},
			{
				ID:            "prod-seed-3",
				Name:          "Tênis Esportivo",
				SKU:           "TEN-003",
				Category:      "Calçados",
				PurchasePrice: decimal.NewFromFloat(150.00),
				Price:         decimal.NewFromFloat(299.00),
				Stock:         8,
				MinStock:      5,
			},
		},
	}
}

func (s *Store) GetProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	return products, nil
}

func (s *Store) SaveProducts(_ context.Context, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make([]domain.Product, len(products))
	copy(s.products, products)
	return nil
}

func (s *Store) GetTransactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]domain.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	return transactions, nil
}

func (s *Store) SaveTransactions(_ context.Context, transactions []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = make([]domain.Transaction, len(transactions))
	copy(s.transactions, transactions)
	return nil
}
