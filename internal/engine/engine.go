// Package engine holds the business rules for mutating the product table
// and the transaction log. Every function is all-or-nothing: validation
// failures return the error with both input collections untouched.
package engine

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gestaopro/backend/internal/domain"
	"gestaopro/backend/internal/xid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidDiscount   = errors.New("invalid discount")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrDuplicateSKU      = errors.New("duplicate sku")
)

var hundred = decimal.NewFromInt(100)

// Result carries the outcome of a committed mutation: both collections
// after the change and the transaction record that was produced.
type Result struct {
	Products     []domain.Product
	Transactions []domain.Transaction
	Transaction  domain.Transaction
}

// ApplyTransaction validates req against the current collections and, on
// success, returns the updated product table and the transaction log with
// the new record prepended (most-recent-first). The input slices are never
// mutated.
//
// Monetary rules: an OUT discount applies to the effective sale price of
// this transaction only; the base, pre-discount sale price is what an IN
// persists to the product table. This is deliberate, not a rounding bug.
func ApplyTransaction(products []domain.Product, transactions []domain.Transaction, req domain.TransactionRequest) (Result, error) {
	if req.Type != domain.TxTypeIn && req.Type != domain.TxTypeOut {
		return Result{}, ErrInvalidType
	}
	if req.Quantity < 1 {
		return Result{}, ErrInvalidQuantity
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return Result{}, ErrInvalidDiscount
	}
	if req.NewPurchasePrice != nil && req.NewPurchasePrice.IsNegative() {
		return Result{}, ErrInvalidPrice
	}
	if req.NewSalePrice != nil && req.NewSalePrice.IsNegative() {
		return Result{}, ErrInvalidPrice
	}

	idx := -1
	for i := range products {
		if products[i].ID == req.ProductID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{}, ErrProductNotFound
	}
	product := products[idx]

	// Stock sufficiency must be checked before any state is produced.
	if req.Type == domain.TxTypeOut && product.Stock < req.Quantity {
		return Result{}, ErrInsufficientStock
	}

	unitCost := product.PurchasePrice
	if req.NewPurchasePrice != nil {
		unitCost = *req.NewPurchasePrice
	}
	baseSale := product.Price
	if req.NewSalePrice != nil {
		baseSale = *req.NewSalePrice
	}

	effectiveSale := baseSale
	if req.Type == domain.TxTypeOut && req.DiscountPercent > 0 {
		factor := hundred.Sub(decimal.NewFromFloat(req.DiscountPercent))
		effectiveSale = baseSale.Mul(factor).Div(hundred)
	}

	qty := decimal.NewFromInt(int64(req.Quantity))
	tx := domain.Transaction{
		ID:            xid.New("tx"),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Type:          req.Type,
		Quantity:      req.Quantity,
		Date:          time.Now(),
		PurchaseValue: unitCost,
		SaleValue:     effectiveSale,
	}

	updated := make([]domain.Product, len(products))
	copy(updated, products)

	if req.Type == domain.TxTypeOut {
		tx.TotalValue = effectiveSale.Mul(qty)
		tx.Profit = effectiveSale.Sub(unitCost).Mul(qty)
		tx.CustomerName = strings.TrimSpace(req.CustomerName)
		updated[idx].Stock = product.Stock - req.Quantity
	} else {
		tx.TotalValue = unitCost.Mul(qty)
		tx.Profit = decimal.Zero
		updated[idx].Stock = product.Stock + req.Quantity
		// The table keeps the base sale price; discounts never reach it.
		updated[idx].PurchasePrice = unitCost
		updated[idx].Price = baseSale
	}

	txLog := make([]domain.Transaction, 0, len(transactions)+1)
	txLog = append(txLog, tx)
	txLog = append(txLog, transactions...)

	return Result{Products: updated, Transactions: txLog, Transaction: tx}, nil
}

// NewProduct validates an "add product" request, assigns an id, and
// returns the product table with the new row appended. SKUs are normalized
// to upper case and must be unique within the table.
func NewProduct(products []domain.Product, req domain.ProductCreateRequest) ([]domain.Product, domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	if name == "" || sku == "" {
		return nil, domain.Product{}, ErrInvalidProduct
	}
	if req.PurchasePrice.IsNegative() || req.Price.IsNegative() {
		return nil, domain.Product{}, ErrInvalidPrice
	}
	if req.Stock < 0 || req.MinStock < 0 {
		return nil, domain.Product{}, ErrInvalidProduct
	}
	for i := range products {
		if products[i].SKU == sku {
			return nil, domain.Product{}, ErrDuplicateSKU
		}
	}

	product := domain.Product{
		ID:            xid.New("prod"),
		Name:          name,
		SKU:           sku,
		Category:      strings.TrimSpace(req.Category),
		PurchasePrice: req.PurchasePrice,
		Price:         req.Price,
		Stock:         req.Stock,
		MinStock:      req.MinStock,
	}

	updated := make([]domain.Product, 0, len(products)+1)
	updated = append(updated, products...)
	updated = append(updated, product)
	return updated, product, nil
}
