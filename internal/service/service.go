// Package service owns the authoritative in-memory copy of both
// collections for the running session. It runs the transaction engine
// against that copy and mirrors every committed mutation to the
// persistence gateway synchronously.
package service

import (
	"context"
	"sync"
	"time"

	"gestaopro/backend/internal/domain"
	"gestaopro/backend/internal/engine"
	"gestaopro/backend/internal/report"
	"gestaopro/backend/internal/store"
)

type Service struct {
	mu           sync.Mutex
	gateway      store.Gateway
	products     []domain.Product
	transactions []domain.Transaction
}

// New loads both collections from the gateway and returns a session
// holding them.
func New(ctx context.Context, gateway store.Gateway) (*Service, error) {
	products, err := gateway.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := gateway.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return &Service{
		gateway:      gateway,
		products:     products,
		transactions: transactions,
	}, nil
}

func (s *Service) ListProducts(_ context.Context) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	return products
}

func (s *Service) ListTransactions(_ context.Context) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := make([]domain.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	return transactions
}

// AddProduct registers a new product and mirrors the updated table.
func (s *Service) AddProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, product, err := engine.NewProduct(s.products, req)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.gateway.SaveProducts(ctx, updated); err != nil {
		return domain.Product{}, err
	}
	s.products = updated
	return product, nil
}

// Apply runs one mutation through the engine and, on success, persists
// the transaction log first and the product table second. A crash between
// the two writes can at worst leave a logged transaction whose stock
// effect is missing; with a single local writer that is the accepted
// best-effort durability trade-off.
func (s *Service) Apply(ctx context.Context, req domain.TransactionRequest) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := engine.ApplyTransaction(s.products, s.transactions, req)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.gateway.SaveTransactions(ctx, result.Transactions); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.gateway.SaveProducts(ctx, result.Products); err != nil {
		return domain.Transaction{}, err
	}
	s.products = result.Products
	s.transactions = result.Transactions
	return result.Transaction, nil
}

func (s *Service) Dashboard(_ context.Context) report.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	return report.BuildDashboard(s.products, s.transactions, time.Now())
}

// Report totals transactions inside the inclusive calendar-day range;
// either bound may be nil to leave that side open.
func (s *Service) Report(_ context.Context, start, end *time.Time) report.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return report.Summarize(s.transactions, start, end)
}

// ReportPreset resolves a quick range (today, week, month) and totals it.
func (s *Service) ReportPreset(ctx context.Context, preset string) (report.Summary, error) {
	start, end, err := report.ResolveRange(preset, time.Now())
	if err != nil {
		return report.Summary{}, err
	}
	return s.Report(ctx, &start, &end), nil
}
