// Package report derives dashboard and financial-report statistics from
// the current collections. Everything here is pure and recomputed on each
// call; there is no cached state to invalidate.
package report

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"gestaopro/backend/internal/domain"
)

var ErrUnknownRange = errors.New("unknown report range")

// Quick-range presets accepted by ResolveRange.
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

const (
	uncategorizedLabel = "uncategorized"
	marginChartLimit   = 5
	recentSalesLimit   = 6
)

// Dashboard is the day-view snapshot rendered on the landing screen.
type Dashboard struct {
	SalesToday      decimal.Decimal      `json:"salesToday"`
	ProfitToday     decimal.Decimal      `json:"profitToday"`
	SalesCountToday int                  `json:"salesCountToday"`
	TotalStockValue decimal.Decimal      `json:"totalStockValue"`
	LowStockCount   int                  `json:"lowStockCount"`
	ProductCount    int                  `json:"productCount"`
	Margins         []ProductMargin      `json:"margins"`
	CategoryStock   []CategoryStock      `json:"categoryStock"`
	RecentSales     []domain.Transaction `json:"recentSales"`
}

type ProductMargin struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	MarginPercent float64 `json:"marginPercent"`
}

type CategoryStock struct {
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

// Summary totals a set of transactions whose calendar day falls within an
// inclusive [start, end] range.
type Summary struct {
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
	Profit         decimal.Decimal `json:"profit"`
	GrossBalance   decimal.Decimal `json:"grossBalance"`
	SalesCount     int             `json:"salesCount"`
	PurchaseCount  int             `json:"purchaseCount"`
}

// BuildDashboard computes today's figures against now's local calendar day.
func BuildDashboard(products []domain.Product, transactions []domain.Transaction, now time.Time) Dashboard {
	today := dayKey(now)

	dash := Dashboard{
		SalesToday:      decimal.Zero,
		ProfitToday:     decimal.Zero,
		TotalStockValue: decimal.Zero,
		ProductCount:    len(products),
	}

	for _, tx := range transactions {
		if tx.Type != domain.TxTypeOut || dayKey(tx.Date) != today {
			continue
		}
		dash.SalesToday = dash.SalesToday.Add(tx.TotalValue)
		dash.ProfitToday = dash.ProfitToday.Add(tx.Profit)
		dash.SalesCountToday++
	}

	for _, p := range products {
		dash.TotalStockValue = dash.TotalStockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.Stock <= p.MinStock {
			dash.LowStockCount++
		}
	}

	limit := len(products)
	if limit > marginChartLimit {
		limit = marginChartLimit
	}
	dash.Margins = make([]ProductMargin, 0, limit)
	for _, p := range products[:limit] {
		dash.Margins = append(dash.Margins, ProductMargin{
			Name:          p.Name,
			SKU:           p.SKU,
			MarginPercent: MarginPercent(p),
		})
	}

	dash.CategoryStock = CategoryDistribution(products)

	dash.RecentSales = make([]domain.Transaction, 0, recentSalesLimit)
	for _, tx := range transactions {
		if tx.Type != domain.TxTypeOut {
			continue
		}
		dash.RecentSales = append(dash.RecentSales, tx)
		if len(dash.RecentSales) == recentSalesLimit {
			break
		}
	}

	return dash
}

// MarginPercent reports (price − purchasePrice) / price × 100. A zero
// sale price yields 0 rather than a division by zero.
func MarginPercent(p domain.Product) float64 {
	if p.Price.IsZero() {
		return 0
	}
	return p.Price.Sub(p.PurchasePrice).Div(p.Price).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// CategoryDistribution sums stock per category, sorted by category name.
// Products without a category land in the "uncategorized" bucket.
func CategoryDistribution(products []domain.Product) []CategoryStock {
	byCategory := make(map[string]int)
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = uncategorizedLabel
		}
		byCategory[category] += p.Stock
	}

	result := make([]CategoryStock, 0, len(byCategory))
	for category, stock := range byCategory {
		result = append(result, CategoryStock{Category: category, Stock: stock})
	}
	slices.SortFunc(result, func(a, b CategoryStock) int {
		if a.Category < b.Category {
			return -1
		}
		if a.Category > b.Category {
			return 1
		}
		return 0
	})
	return result
}

// Summarize totals transactions whose date falls within the inclusive
// [start, end] calendar-day range. A nil bound leaves that side open.
func Summarize(transactions []domain.Transaction, start, end *time.Time) Summary {
	summary := Summary{
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
		Profit:         decimal.Zero,
		GrossBalance:   decimal.Zero,
	}

	var startKey, endKey string
	if start != nil {
		startKey = dayKey(*start)
	}
	if end != nil {
		endKey = dayKey(*end)
	}

	for _, tx := range transactions {
		key := dayKey(tx.Date)
		if startKey != "" && key < startKey {
			continue
		}
		if endKey != "" && key > endKey {
			continue
		}
		switch tx.Type {
		case domain.TxTypeOut:
			summary.TotalSales = summary.TotalSales.Add(tx.TotalValue)
			summary.Profit = summary.Profit.Add(tx.Profit)
			summary.SalesCount++
		case domain.TxTypeIn:
			summary.TotalPurchases = summary.TotalPurchases.Add(tx.TotalValue)
			summary.PurchaseCount++
		}
	}

	summary.GrossBalance = summary.TotalSales.Sub(summary.TotalPurchases)
	return summary
}

// ResolveRange translates a quick-range preset into concrete bounds:
// today only, Monday of the current week through today, or the first of
// the current month through today.
func ResolveRange(preset string, now time.Time) (time.Time, time.Time, error) {
	end := now
	switch preset {
	case RangeToday:
		return now, end, nil
	case RangeWeek:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		start := now.AddDate(0, 0, -daysSinceMonday)
		return start, end, nil
	case RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, ErrUnknownRange
	}
}

// dayKey buckets a timestamp into its local calendar day. ISO formatting
// keeps the keys lexicographically ordered, which Summarize relies on.
func dayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
