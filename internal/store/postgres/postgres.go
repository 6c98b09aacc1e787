// Package postgres stores each collection as one JSONB document row in a
// key-value table, matching the gateway contract rather than a relational
// schema. Missing rows read as empty collections.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"gestaopro/backend/internal/domain"
	"gestaopro/backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS app_collections (
			key        TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (s *Store) GetProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := s.get(ctx, store.ProductsKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) SaveProducts(ctx context.Context, products []domain.Product) error {
	return s.set(ctx, store.ProductsKey, products)
}

func (s *Store) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	if err := s.get(ctx, store.TransactionsKey, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *Store) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	return s.set(ctx, store.TransactionsKey, transactions)
}

func (s *Store) get(ctx context.Context, key string, dest any) error {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM app_collections WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, dest)
}

func (s *Store) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_collections (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`, key, payload)
	return err
}
