// internal/ledger/costing.go
package ledger

import (
	"github.com/princevibe/books-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ItemCosting is the derived cost and profit projection for an inventory item.
type ItemCosting struct {
	CostPrice        decimal.Decimal `json:"cost_price"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Profit           decimal.Decimal `json:"profit"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
}

// SaleCosting is the derived revenue and profit for a single sale.
type SaleCosting struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	CostOfGoods  decimal.Decimal `json:"cost_of_goods"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

// CostItem derives the costing figures for an inventory item:
//
//	costPrice        = wholesalePrice + boxPrice
//	totalCost        = costPrice + marketingCost + deliveryCost
//	profit           = finalPrice - totalCost
//	profitPercentage = profit / totalCost * 100 (0 when totalCost is 0)
//
// A negative monetary input is a validation error, not something to clamp.
func CostItem(item domain.InventoryItem) (ItemCosting, error) {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"wholesale_price", item.WholesalePrice},
		{"box_price", item.BoxPrice},
		{"marketing_cost", item.MarketingCost},
		{"delivery_cost", item.DeliveryCost},
		{"final_price", item.FinalPrice},
	}
	for _, f := range fields {
		if err := requireNonNegative(f.name, f.value); err != nil {
			return ItemCosting{}, err
		}
	}

	costPrice := item.WholesalePrice.Add(item.BoxPrice)
	totalCost := costPrice.Add(item.MarketingCost).Add(item.DeliveryCost)
	profit := item.FinalPrice.Sub(totalCost)

	return ItemCosting{
		CostPrice:        costPrice,
		TotalCost:        totalCost,
		Profit:           profit,
		ProfitPercentage: safeDivide(profit, totalCost).Mul(hundred),
	}, nil
}

// CostSale derives the revenue figures for a sale:
//
//	totalRevenue = sellingPrice * quantity
//	costOfGoods  = wholesalePrice * quantity
//	totalProfit  = totalRevenue - costOfGoods - expenses
//	profitMargin = totalProfit / totalRevenue * 100 (0 when totalRevenue is 0)
func CostSale(sale domain.Sale) (SaleCosting, error) {
	if sale.Quantity <= 0 {
		return SaleCosting{}, domain.NewValidationError("quantity", "must be positive")
	}
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"selling_price", sale.SellingPrice},
		{"wholesale_price", sale.WholesalePrice},
		{"expenses", sale.Expenses},
	}
	for _, f := range fields {
		if err := requireNonNegative(f.name, f.value); err != nil {
			return SaleCosting{}, err
		}
	}

	qty := decimal.NewFromInt(int64(sale.Quantity))
	totalRevenue := sale.SellingPrice.Mul(qty)
	costOfGoods := sale.WholesalePrice.Mul(qty)
	totalProfit := totalRevenue.Sub(costOfGoods).Sub(sale.Expenses)

	return SaleCosting{
		TotalRevenue: totalRevenue,
		CostOfGoods:  costOfGoods,
		TotalProfit:  totalProfit,
		ProfitMargin: safeDivide(totalProfit, totalRevenue).Mul(hundred),
	}, nil
}
