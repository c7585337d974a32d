// internal/ledger/purchase.go
package ledger

import (
	"time"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// defaultMarkup prices a product created from a purchase at 1.5x its unit
// cost until someone sets a real final price.
var defaultMarkup = decimal.NewFromFloat(1.5)

// ApplyPurchase returns the inventory after booking a purchase: an existing
// product (matched by name) gains the purchased quantity, an unknown product
// becomes a new item priced at the default markup. The input slice is not
// mutated.
func ApplyPurchase(items []domain.InventoryItem, p domain.Purchase, now time.Time) ([]domain.InventoryItem, error) {
	if p.ProductName == "" {
		return nil, domain.NewValidationError("product_name", "is required")
	}
	if p.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "must be positive")
	}
	if err := requireNonNegative("cost_price", p.CostPrice); err != nil {
		return nil, err
	}
	if err := requireNonNegative("box_price", p.BoxPrice); err != nil {
		return nil, err
	}

	next := make([]domain.InventoryItem, len(items))
	copy(next, items)

	var maxProductNumber int64
	for i := range next {
		if next[i].ProductNumber > maxProductNumber {
			maxProductNumber = next[i].ProductNumber
		}
		if next[i].Name == p.ProductName {
			next[i].StockQuantity += p.Quantity
			next[i].LastUpdated = now
			return next, nil
		}
	}

	next = append(next, domain.InventoryItem{
		ProductNumber:  maxProductNumber + 1,
		Name:           p.ProductName,
		StockQuantity:  p.Quantity,
		WholesalePrice: p.CostPrice,
		BoxPrice:       p.BoxPrice,
		MarketingCost:  decimal.Zero,
		DeliveryCost:   decimal.Zero,
		FinalPrice:     p.CostPrice.Mul(defaultMarkup),
		DateAdded:      now,
		LastUpdated:    now,
	})
	return next, nil
}
