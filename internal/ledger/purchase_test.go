package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/princevibe/books-backend/internal/domain"
)

func TestApplyPurchase_IncrementsExistingStock(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	items := []domain.InventoryItem{
		{ProductNumber: 1, Name: "Classic Watch", StockQuantity: 5},
	}
	purchase := domain.Purchase{
		ProductName: "Classic Watch",
		Supplier:    "Acme Trading",
		Quantity:    3,
		CostPrice:   dec("3500"),
		BoxPrice:    dec("250"),
	}

	next, err := ApplyPurchase(items, purchase, now)
	if err != nil {
		t.Fatalf("ApplyPurchase error: %v", err)
	}

	if len(next) != 1 {
		t.Fatalf("expected 1 item, got %d", len(next))
	}
	if next[0].StockQuantity != 8 {
		t.Errorf("expected stock 8, got %d", next[0].StockQuantity)
	}
	if !next[0].LastUpdated.Equal(now) {
		t.Errorf("expected lastUpdated bumped to %v", now)
	}
	if items[0].StockQuantity != 5 {
		t.Error("input slice must not be mutated")
	}
}

func TestApplyPurchase_CreatesNewProductWithDefaultMarkup(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	items := []domain.InventoryItem{
		{ProductNumber: 7, Name: "Classic Watch", StockQuantity: 5},
	}
	purchase := domain.Purchase{
		ProductName: "Sport Watch",
		Supplier:    "Acme Trading",
		Quantity:    4,
		CostPrice:   dec("3500"),
		BoxPrice:    dec("250"),
	}

	next, err := ApplyPurchase(items, purchase, now)
	if err != nil {
		t.Fatalf("ApplyPurchase error: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("expected 2 items, got %d", len(next))
	}

	created := next[1]
	if created.Name != "Sport Watch" || created.StockQuantity != 4 {
		t.Errorf("unexpected new item: %+v", created)
	}
	if created.ProductNumber != 8 {
		t.Errorf("expected product number 8, got %d", created.ProductNumber)
	}
	if !created.FinalPrice.Equal(dec("5250")) {
		t.Errorf("expected default markup final price 5250, got %s", created.FinalPrice)
	}
	if !created.WholesalePrice.Equal(dec("3500")) || !created.BoxPrice.Equal(dec("250")) {
		t.Errorf("cost fields not carried over: %+v", created)
	}
	if !created.MarketingCost.IsZero() || !created.DeliveryCost.IsZero() {
		t.Errorf("overhead costs should start at zero: %+v", created)
	}
}

func TestApplyPurchase_RejectsBadInputs(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name     string
		purchase domain.Purchase
	}{
		{"missing product name", domain.Purchase{Quantity: 1}},
		{"zero quantity", domain.Purchase{ProductName: "X", Quantity: 0}},
		{"negative cost", domain.Purchase{ProductName: "X", Quantity: 1, CostPrice: dec("-1")}},
	}
	for _, tc := range cases {
		_, err := ApplyPurchase(nil, tc.purchase, now)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestPurchaseTotalCost(t *testing.T) {
	p := domain.Purchase{Quantity: 3, CostPrice: dec("3500"), BoxPrice: dec("250")}
	if !p.TotalCost().Equal(dec("11250")) {
		t.Errorf("expected 11250, got %s", p.TotalCost())
	}
}
