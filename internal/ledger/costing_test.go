package ledger

import (
	"errors"
	"testing"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCostItem_DerivesCostingFigures(t *testing.T) {
	item := domain.InventoryItem{
		WholesalePrice: dec("3500"),
		BoxPrice:       dec("250"),
		MarketingCost:  dec("500"),
		DeliveryCost:   dec("150"),
		FinalPrice:     dec("5500"),
	}

	costing, err := CostItem(item)
	if err != nil {
		t.Fatalf("CostItem error: %v", err)
	}

	checks := []struct {
		name     string
		got      decimal.Decimal
		expected string
	}{
		{"cost_price", costing.CostPrice, "3750"},
		{"total_cost", costing.TotalCost, "4400"},
		{"profit", costing.Profit, "1100"},
		{"profit_percentage", costing.ProfitPercentage, "25"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.expected)) {
			t.Errorf("%s expected %s, got %s", c.name, c.expected, c.got)
		}
	}
}

func TestCostItem_ProfitPlusTotalCostEqualsFinalPrice(t *testing.T) {
	items := []domain.InventoryItem{
		{WholesalePrice: dec("3500"), BoxPrice: dec("250"), MarketingCost: dec("500"), DeliveryCost: dec("150"), FinalPrice: dec("5500")},
		{WholesalePrice: dec("120.75"), BoxPrice: dec("9.25"), MarketingCost: dec("0.01"), DeliveryCost: dec("49.99"), FinalPrice: dec("199.99")},
		{WholesalePrice: dec("1000"), BoxPrice: dec("0"), MarketingCost: dec("0"), DeliveryCost: dec("0"), FinalPrice: dec("750")},
	}
	for i, item := range items {
		costing, err := CostItem(item)
		if err != nil {
			t.Fatalf("case %d: CostItem error: %v", i, err)
		}
		if !costing.Profit.Add(costing.TotalCost).Equal(item.FinalPrice) {
			t.Errorf("case %d: profit %s + totalCost %s != finalPrice %s",
				i, costing.Profit, costing.TotalCost, item.FinalPrice)
		}
	}
}

func TestCostItem_ZeroTotalCostYieldsZeroPercentage(t *testing.T) {
	costing, err := CostItem(domain.InventoryItem{FinalPrice: dec("100")})
	if err != nil {
		t.Fatalf("CostItem error: %v", err)
	}
	if !costing.ProfitPercentage.IsZero() {
		t.Errorf("expected zero profit percentage, got %s", costing.ProfitPercentage)
	}
	if !costing.Profit.Equal(dec("100")) {
		t.Errorf("expected profit 100, got %s", costing.Profit)
	}
}

func TestCostItem_NegativeInputIsValidationError(t *testing.T) {
	_, err := CostItem(domain.InventoryItem{WholesalePrice: dec("-1")})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "wholesale_price" {
		t.Errorf("expected field wholesale_price, got %s", verr.Field)
	}
}

func TestCostSale_DerivesRevenueFigures(t *testing.T) {
	sale := domain.Sale{
		Quantity:       1,
		SellingPrice:   dec("7000"),
		WholesalePrice: dec("3500"),
		Expenses:       dec("900"),
	}

	costing, err := CostSale(sale)
	if err != nil {
		t.Fatalf("CostSale error: %v", err)
	}

	if !costing.TotalRevenue.Equal(dec("7000")) {
		t.Errorf("total revenue expected 7000, got %s", costing.TotalRevenue)
	}
	if !costing.CostOfGoods.Equal(dec("3500")) {
		t.Errorf("cost of goods expected 3500, got %s", costing.CostOfGoods)
	}
	if !costing.TotalProfit.Equal(dec("2600")) {
		t.Errorf("total profit expected 2600, got %s", costing.TotalProfit)
	}
	if !RoundMoney(costing.ProfitMargin).Equal(dec("37.14")) {
		t.Errorf("profit margin expected ~37.14, got %s", costing.ProfitMargin)
	}
}

func TestCostSale_ProfitIdentity(t *testing.T) {
	sales := []domain.Sale{
		{Quantity: 3, SellingPrice: dec("150"), WholesalePrice: dec("90"), Expenses: dec("45")},
		{Quantity: 10, SellingPrice: dec("19.99"), WholesalePrice: dec("12.50"), Expenses: dec("0")},
	}
	for i, sale := range sales {
		costing, err := CostSale(sale)
		if err != nil {
			t.Fatalf("case %d: CostSale error: %v", i, err)
		}
		expected := costing.TotalRevenue.Sub(costing.CostOfGoods).Sub(sale.Expenses)
		if !costing.TotalProfit.Equal(expected) {
			t.Errorf("case %d: total profit %s, expected %s", i, costing.TotalProfit, expected)
		}
	}
}

func TestCostSale_ZeroRevenueYieldsZeroMargin(t *testing.T) {
	costing, err := CostSale(domain.Sale{Quantity: 2, WholesalePrice: dec("10")})
	if err != nil {
		t.Fatalf("CostSale error: %v", err)
	}
	if !costing.ProfitMargin.IsZero() {
		t.Errorf("expected zero margin, got %s", costing.ProfitMargin)
	}
}

func TestCostSale_RejectsBadInputs(t *testing.T) {
	cases := []struct {
		name string
		sale domain.Sale
	}{
		{"zero quantity", domain.Sale{Quantity: 0}},
		{"negative selling price", domain.Sale{Quantity: 1, SellingPrice: dec("-5")}},
		{"negative expenses", domain.Sale{Quantity: 1, Expenses: dec("-0.01")}},
	}
	for _, tc := range cases {
		_, err := CostSale(tc.sale)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}
