package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. IN replenishes stock (optionally updating table
// prices), OUT records a sale (optionally discounted).
const (
	TxTypeIn  = "IN"
	TxTypeOut = "OUT"
)

// Product is the current table state of one inventory item. PurchasePrice
// and Price are the current unit cost and unit sale price; both are
// overwritten by IN transactions that supply new values.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"minStock"`
}

// Transaction is one committed stock movement. Records are append-only:
// once created they are never edited or deleted. ProductName is a snapshot
// of the product name at transaction time, and PurchaseValue/SaleValue are
// unit-level monetary snapshots, so later product edits never change what
// a past transaction reports.
type Transaction struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Type          string          `json:"type"`
	Quantity      int             `json:"quantity"`
	Date          time.Time       `json:"date"`
	PurchaseValue decimal.Decimal `json:"purchaseValue"`
	SaleValue     decimal.Decimal `json:"saleValue"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	Profit        decimal.Decimal `json:"profit"`
	CustomerName  string          `json:"customerName,omitempty"`
}

// ProductCreateRequest is the "add product" action issued by the
// presentation layer. The id is assigned by the engine.
type ProductCreateRequest struct {
	Name          string          `json:"name" validate:"required"`
	SKU           string          `json:"sku" validate:"required"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock" validate:"gte=0"`
	MinStock      int             `json:"minStock" validate:"gte=0"`
}

// TransactionRequest is a mutation request against a single product.
// NewPurchasePrice and NewSalePrice are only meaningful for IN and, when
// supplied, permanently overwrite the product's table prices.
// DiscountPercent and CustomerName are only meaningful for OUT.
type TransactionRequest struct {
	ProductID        string           `json:"productId" validate:"required"`
	Type             string           `json:"type" validate:"required,oneof=IN OUT"`
	Quantity         int              `json:"quantity"`
	CustomerName     string           `json:"customerName"`
	NewPurchasePrice *decimal.Decimal `json:"newPurchasePrice,omitempty"`
	NewSalePrice     *decimal.Decimal `json:"newSalePrice,omitempty"`
	DiscountPercent  float64          `json:"discountPercent"`
}
