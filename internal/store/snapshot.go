// internal/store/snapshot.go
package store

import (
	"github.com/princevibe/books-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Snapshot holds the six entity collections in memory. It is populated by
// the persistence gateway and handed to the ledger calculators as an
// immutable value; the calculators never write back into it.
type Snapshot struct {
	Inventory []domain.InventoryItem `json:"inventory"`
	Purchases []domain.Purchase      `json:"purchases"`
	Sales     []domain.Sale          `json:"sales"`
	Expenses  []domain.Expense       `json:"expenses"`
	Partners  []domain.Partner       `json:"partners"`
	Settings  domain.Settings        `json:"settings"`
}

// Empty returns true when all five collections are empty. Settings alone do
// not make a snapshot worth migrating.
func (s *Snapshot) Empty() bool {
	return len(s.Inventory) == 0 && len(s.Purchases) == 0 &&
		len(s.Sales) == 0 && len(s.Expenses) == 0 && len(s.Partners) == 0
}

// DefaultSettings returns the business defaults used when no settings record
// has been persisted yet.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		ReinvestmentPercentage: decimal.NewFromInt(70),
		CurrencyCode:           "PKR",
		BusinessName:           "PrinceVibe Business Manager",
		TaxRate:                decimal.Zero,
	}
}

// DefaultPartners returns the two 50/50 placeholder partners seeded into an
// empty local store.
func DefaultPartners() []domain.Partner {
	half := decimal.NewFromInt(50)
	return []domain.Partner{
		{ID: "1", Name: "Partner 1", SharePercentage: half},
		{ID: "2", Name: "Partner 2", SharePercentage: half},
	}
}
