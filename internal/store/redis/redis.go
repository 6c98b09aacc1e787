// Package redis mirrors the two collections to a redis instance as JSON
// arrays under two keys in a configurable namespace. Absent keys read as
// empty collections.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"gestaopro/backend/internal/domain"
	"gestaopro/backend/internal/store"
)

type Store struct {
	client    *goredis.Client
	namespace string
}

func New(addr string, password string, db int, namespace string) *Store {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if namespace == "" {
		namespace = "gestaopro"
	}
	return &Store{client: client, namespace: namespace}
}

// NewWithClient wires an existing client, which lets tests point the
// gateway at an embedded server.
func NewWithClient(client *goredis.Client, namespace string) *Store {
	if namespace == "" {
		namespace = "gestaopro"
	}
	return &Store{client: client, namespace: namespace}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(name string) string {
	return fmt.Sprintf("%s:%s", s.namespace, name)
}

func (s *Store) GetProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := s.get(ctx, s.key(store.ProductsKey), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) SaveProducts(ctx context.Context, products []domain.Product) error {
	return s.set(ctx, s.key(store.ProductsKey), products)
}

func (s *Store) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	if err := s.get(ctx, s.key(store.TransactionsKey), &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *Store) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	return s.set(ctx, s.key(store.TransactionsKey), transactions)
}

func (s *Store) get(ctx context.Context, key string, dest any) error {
	val, err := s.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (s *Store) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	// Durable mirror, not a cache: no TTL.
	return s.client.Set(ctx, key, payload, 0).Err()
}
