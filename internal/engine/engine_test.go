package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"gestaopro/backend/internal/domain"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "prod-1",
			Name:          "Camiseta Algodão",
			SKU:           "CAM-001",
			Category:      "Roupas",
			PurchasePrice: dec("60"),
			Price:         dec("100"),
			Stock:         10,
			MinStock:      5,
		},
		{
			ID:            "prod-2",
			Name:          "Calça Jeans Slim",
			SKU:           "CAL-002",
			Category:      "Roupas",
			PurchasePrice: dec("60.00"),
			Price:         dec("129.90"),
			Stock:         12,
			MinStock:      5,
		},
	}
}

func TestDiscountedSale(t *testing.T) {
	result, err := ApplyTransaction(seedProducts(), nil, domain.TransactionRequest{
		ProductID:       "prod-1",
		Type:            domain.TxTypeOut,
		Quantity:        3,
		DiscountPercent: 10,
		CustomerName:    "Maria",
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	tx := result.Transaction
	if !tx.SaleValue.Equal(dec("90")) {
		t.Fatalf("expected sale value 90, got %s", tx.SaleValue)
	}
	if !tx.TotalValue.Equal(dec("270")) {
		t.Fatalf("expected total value 270, got %s", tx.TotalValue)
	}
	if !tx.Profit.Equal(dec("90")) {
		t.Fatalf("expected profit 90, got %s", tx.Profit)
	}
	if !tx.PurchaseValue.Equal(dec("60")) {
		t.Fatalf("expected purchase value 60, got %s", tx.PurchaseValue)
	}
	if tx.CustomerName != "Maria" {
		t.Fatalf("expected customer snapshot, got %q", tx.CustomerName)
	}
	if result.Products[0].Stock != 7 {
		t.Fatalf("expected stock 7, got %d", result.Products[0].Stock)
	}
	// The table price must stay undiscounted.
	if !result.Products[0].Price.Equal(dec("100")) {
		t.Fatalf("expected table price 100, got %s", result.Products[0].Price)
	}
}

func TestSaleWithoutDiscountUsesTablePrice(t *testing.T) {
	result, err := ApplyTransaction(seedProducts(), nil, domain.TransactionRequest{
		ProductID: "prod-1",
		Type:      domain.TxTypeOut,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !result.Transaction.TotalValue.Equal(dec("200")) {
		t.Fatalf("expected total 200, got %s", result.Transaction.TotalValue)
	}
	if !result.Transaction.Profit.Equal(dec("80")) {
		t.Fatalf("expected profit 80, got %s", result.Transaction.Profit)
	}
}

func TestZeroProfitWhenSaleEqualsCost(t *testing.T) {
	products := seedProducts()
	products[0].PurchasePrice = dec("100")

	result, err := ApplyTransaction(products, nil, domain.TransactionRequest{
		ProductID: "prod-1",
		Type:      domain.TxTypeOut,
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !result.Transaction.Profit.IsZero() {
		t.Fatalf("expected zero profit, got %s", result.Transaction.Profit)
	}
}

func TestInsufficientStockLeavesCollectionsUnchanged(t *testing.T) {
	products := seedProducts()
	transactions := []domain.Transaction{{ID: "tx-existing"}}

	_, err := ApplyTransaction(products, transactions, domain.TransactionRequest{
		ProductID: "prod-1",
		Type:      domain.TxTypeOut,
		Quantity:  15,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if products[0].Stock != 10 {
		t.Fatalf("input product mutated: stock %d", products[0].Stock)
	}
	if len(transactions) != 1 {
		t.Fatalf("input log mutated: %d entries", len(transactions))
	}
}

func TestStockInUpdatesTablePrices(t *testing.T) {
	result, err := ApplyTransaction(seedProducts(), nil, domain.TransactionRequest{
		ProductID:        "prod-1",
		Type:             domain.TxTypeIn,
		Quantity:         5,
		NewPurchasePrice: decPtr("55"),
		NewSalePrice:     decPtr("110"),
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	updated := result.Products[0]
	if updated.Stock != 15 {
		t.Fatalf("expected stock 15, got %d", updated.Stock)
	}
	if !updated.PurchasePrice.Equal(dec("55")) {
		t.Fatalf("expected purchase price 55, got %s", updated.PurchasePrice)
	}
	if !updated.Price.Equal(dec("110")) {
		t.Fatalf("expected price 110, got %s", updated.Price)
	}

	tx := result.Transaction
	if !tx.TotalValue.Equal(dec("275")) {
		t.Fatalf("expected total 275 (5 x 55), got %s", tx.TotalValue)
	}
	if !tx.Profit.IsZero() {
		t.Fatalf("expected zero profit on IN, got %s", tx.Profit)
	}
}

func TestStockInWithoutPricesKeepsTable(t *testing.T) {
	result, err := ApplyTransaction(seedProducts(), nil, domain.TransactionRequest{
		ProductID: "prod-1",
		Type:      domain.TxTypeIn,
		Quantity:  5,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	updated := result.Products[0]
	if !updated.PurchasePrice.Equal(dec("60")) || !updated.Price.Equal(dec("100")) {
		t.Fatalf("expected unchanged prices, got %s / %s", updated.PurchasePrice, updated.Price)
	}
	if !result.Transaction.TotalValue.Equal(dec("300")) {
		t.Fatalf("expected total 300 (5 x 60), got %s", result.Transaction.TotalValue)
	}
}

func TestDiscountIgnoredOnStockIn(t *testing.T) {
	result, err := ApplyTransaction(seedProducts(), nil, domain.TransactionRequest{
		ProductID:       "prod-1",
		Type:            domain.TxTypeIn,
		Quantity:        2,
		DiscountPercent: 50,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !result.Transaction.SaleValue.Equal(dec("100")) {
		t.Fatalf("expected sale snapshot 100, got %s", result.Transaction.SaleValue)
	}
	if !result.Products[0].Price.Equal(dec("100")) {
		t.Fatalf("expected table price 100, got %s", result.Products[0].Price)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		req  domain.TransactionRequest
		want error
	}{
		{"unknown product", domain.TransactionRequest{ProductID: "prod-x", Type: domain.TxTypeOut, Quantity: 1}, ErrProductNotFound},
		{"zero quantity", domain.TransactionRequest{ProductID: "prod-1", Type: domain.TxTypeOut, Quantity: 0}, ErrInvalidQuantity},
		{"negative quantity", domain.TransactionRequest{ProductID: "prod-1", Type: domain.TxTypeIn, Quantity: -3}, ErrInvalidQuantity},
		{"discount above 100", domain.TransactionRequest{ProductID: "prod-1", Type: domain.TxTypeOut, Quantity: 1, DiscountPercent: 120}, ErrInvalidDiscount},
		{"negative discount", domain.TransactionRequest{ProductID: "prod-1", Type: domain.TxTypeOut, Quantity: 1, DiscountPercent: -5}, ErrInvalidDiscount},
		{"bad type", domain.TransactionRequest{ProductID: "prod-1", Type: "MOVE", Quantity: 1}, ErrInvalidType},
		{"negative new price", domain.TransactionRequest{ProductID: "prod-1", Type: domain.TxTypeIn, Quantity: 1, NewSalePrice: decPtr("-1")}, ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplyTransaction(seedProducts(), nil, tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTransactionLogIsPrepended(t *testing.T) {
	first, err := ApplyTransaction(seedProducts(), nil, domain.TransactionRequest{
		ProductID: "prod-1",
		Type:      domain.TxTypeOut,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("first apply failed: %v", err)
	}

	second, err := ApplyTransaction(first.Products, first.Transactions, domain.TransactionRequest{
		ProductID: "prod-2",
		Type:      domain.TxTypeOut,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	if len(second.Transactions) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(second.Transactions))
	}
	if second.Transactions[0].ProductID != "prod-2" {
		t.Fatalf("expected most recent entry first, got %s", second.Transactions[0].ProductID)
	}
	if second.Transactions[0].ID == second.Transactions[1].ID {
		t.Fatalf("expected unique transaction ids")
	}
}

func TestStockNeverNegativeAcrossSequence(t *testing.T) {
	products := seedProducts()
	var transactions []domain.Transaction

	requests := []domain.TransactionRequest{
		{ProductID: "prod-1", Type: domain.TxTypeOut, Quantity: 6},
		{ProductID: "prod-1", Type: domain.TxTypeOut, Quantity: 6},
		{ProductID: "prod-1", Type: domain.TxTypeIn, Quantity: 3},
		{ProductID: "prod-1", Type: domain.TxTypeOut, Quantity: 7},
		{ProductID: "prod-1", Type: domain.TxTypeOut, Quantity: 1},
	}

	for _, req := range requests {
		result, err := ApplyTransaction(products, transactions, req)
		if err != nil {
			continue
		}
		products = result.Products
		transactions = result.Transactions
		for _, p := range products {
			if p.Stock < 0 {
				t.Fatalf("stock went negative for %s: %d", p.SKU, p.Stock)
			}
		}
	}
}

func TestNewProductAssignsIDAndNormalizesSKU(t *testing.T) {
	updated, product, err := NewProduct(seedProducts(), domain.ProductCreateRequest{
		Name:          "Boné Trucker",
		SKU:           " bon-010 ",
		Category:      "Acessórios",
		PurchasePrice: dec("12"),
		Price:         dec("39.90"),
		Stock:         20,
		MinStock:      4,
	})
	if err != nil {
		t.Fatalf("new product failed: %v", err)
	}
	if product.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if product.SKU != "BON-010" {
		t.Fatalf("expected normalized sku, got %q", product.SKU)
	}
	if len(updated) != 3 {
		t.Fatalf("expected 3 products, got %d", len(updated))
	}
}

func TestNewProductRejectsDuplicateSKU(t *testing.T) {
	_, _, err := NewProduct(seedProducts(), domain.ProductCreateRequest{
		Name:  "Outra Camiseta",
		SKU:   "cam-001",
		Price: dec("10"),
	})
	if !errors.Is(err, ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}
}

func TestNewProductRejectsInvalidFields(t *testing.T) {
	if _, _, err := NewProduct(nil, domain.ProductCreateRequest{SKU: "X-1"}); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct for missing name, got %v", err)
	}
	if _, _, err := NewProduct(nil, domain.ProductCreateRequest{Name: "X", SKU: "X-1", Price: dec("-2")}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if _, _, err := NewProduct(nil, domain.ProductCreateRequest{Name: "X", SKU: "X-1", Stock: -1}); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct for negative stock, got %v", err)
	}
}
