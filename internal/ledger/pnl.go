// internal/ledger/pnl.go
package ledger

import (
	"sort"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ProfitLoss is the folded profit-and-loss statement for a filtered period.
type ProfitLoss struct {
	TotalRevenue           decimal.Decimal `json:"total_revenue"`
	TotalCostOfGoods       decimal.Decimal `json:"total_cost_of_goods"`
	TotalSalesExpenses     decimal.Decimal `json:"total_sales_expenses"`
	TotalOperatingExpenses decimal.Decimal `json:"total_operating_expenses"`
	TotalExpenses          decimal.Decimal `json:"total_expenses"`
	GrossProfit            decimal.Decimal `json:"gross_profit"`
	NetProfit              decimal.Decimal `json:"net_profit"`
	ProfitMargin           decimal.Decimal `json:"profit_margin"`
	GrossProfitMargin      decimal.Decimal `json:"gross_profit_margin"`
}

// ProductPerformance accumulates per-product sales figures for the ranking.
type ProductPerformance struct {
	Name     string          `json:"name"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
	Quantity int             `json:"quantity"`
	Sales    int             `json:"sales"`
}

// CategoryAmount is one row of the expense breakdown.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Aggregate folds the filtered sales and expenses into a P&L statement.
// Pure function over its arguments; records are assumed validated.
func Aggregate(sales []domain.Sale, expenses []domain.Expense) ProfitLoss {
	var (
		totalRevenue       = decimal.Zero
		totalCostOfGoods   = decimal.Zero
		totalSalesExpenses = decimal.Zero
		totalOperating     = decimal.Zero
	)

	for _, s := range sales {
		qty := decimal.NewFromInt(int64(s.Quantity))
		totalRevenue = totalRevenue.Add(s.SellingPrice.Mul(qty))
		totalCostOfGoods = totalCostOfGoods.Add(s.WholesalePrice.Mul(qty))
		totalSalesExpenses = totalSalesExpenses.Add(s.Expenses)
	}
	for _, e := range expenses {
		totalOperating = totalOperating.Add(e.Amount)
	}

	totalExpenses := totalOperating.Add(totalSalesExpenses)
	grossProfit := totalRevenue.Sub(totalCostOfGoods)
	netProfit := grossProfit.Sub(totalExpenses)

	return ProfitLoss{
		TotalRevenue:           totalRevenue,
		TotalCostOfGoods:       totalCostOfGoods,
		TotalSalesExpenses:     totalSalesExpenses,
		TotalOperatingExpenses: totalOperating,
		TotalExpenses:          totalExpenses,
		GrossProfit:            grossProfit,
		NetProfit:              netProfit,
		ProfitMargin:           safeDivide(netProfit, totalRevenue).Mul(hundred),
		GrossProfitMargin:      safeDivide(grossProfit, totalRevenue).Mul(hundred),
	}
}

// TopProducts ranks products by cumulative profit, descending. Ties keep the
// order in which the product first appeared in the sales slice.
func TopProducts(sales []domain.Sale, n int) []ProductPerformance {
	byName := make(map[string]*ProductPerformance)
	order := make([]string, 0)

	for _, s := range sales {
		perf, ok := byName[s.ProductName]
		if !ok {
			perf = &ProductPerformance{
				Name:    s.ProductName,
				Revenue: decimal.Zero,
				Profit:  decimal.Zero,
			}
			byName[s.ProductName] = perf
			order = append(order, s.ProductName)
		}

		qty := decimal.NewFromInt(int64(s.Quantity))
		revenue := s.SellingPrice.Mul(qty)
		profit := revenue.Sub(s.WholesalePrice.Mul(qty)).Sub(s.Expenses)

		perf.Revenue = perf.Revenue.Add(revenue)
		perf.Profit = perf.Profit.Add(profit)
		perf.Quantity += s.Quantity
		perf.Sales++
	}

	ranked := make([]ProductPerformance, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, *byName[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profit.GreaterThan(ranked[j].Profit)
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ExpenseBreakdown groups operating expenses by category. A non-zero sales
// expense total is reported under its own "Sales Expenses" category. Rows
// are sorted by amount descending, ties by category name ascending.
func ExpenseBreakdown(expenses []domain.Expense, salesExpenses decimal.Decimal) []CategoryAmount {
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = "Other"
		}
		byCategory[category] = byCategory[category].Add(e.Amount)
	}
	if salesExpenses.IsPositive() {
		byCategory["Sales Expenses"] = byCategory["Sales Expenses"].Add(salesExpenses)
	}

	rows := make([]CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		rows = append(rows, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	return rows
}

// InventoryValue is the stock valuation at acquisition cost:
// sum of costPrice * stockQuantity across all items.
func InventoryValue(items []domain.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		costPrice := item.WholesalePrice.Add(item.BoxPrice)
		total = total.Add(costPrice.Mul(decimal.NewFromInt(int64(item.StockQuantity))))
	}
	return total
}
