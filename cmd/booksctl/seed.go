// cmd/booksctl/seed.go
package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/princevibe/books-backend/internal/ledger"
	"github.com/princevibe/books-backend/internal/repository/localstore"
	"github.com/princevibe/books-backend/internal/store"
)

// runSeed writes a small demo ledger into the local store: the inventory is
// derived from the purchases through the same stock application the engine
// uses, so the demo books are internally consistent.
func runSeed(c *cli.Context) error {
	local, err := localstore.New(c.String("data-dir"))
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	now := time.Now().UTC()
	snap, err := demoSnapshot(now)
	if err != nil {
		return err
	}

	if err := local.Replace(c.Context, snap); err != nil {
		return fmt.Errorf("failed to write demo ledger: %w", err)
	}

	log.Printf("seeded %d products, %d purchases, %d sales, %d expenses into %s\n",
		len(snap.Inventory), len(snap.Purchases), len(snap.Sales), len(snap.Expenses), c.String("data-dir"))
	return nil
}

func demoSnapshot(now time.Time) (*store.Snapshot, error) {
	lastMonth := now.AddDate(0, -1, 0)

	purchases := []domain.Purchase{
		{
			ID: "pur-1", ProductName: "Classic Watch", Supplier: "Karachi Traders",
			Quantity: 10, CostPrice: dec("3500"), BoxPrice: dec("250"), Date: lastMonth,
		},
		{
			ID: "pur-2", ProductName: "Sport Watch", Supplier: "Karachi Traders",
			Quantity: 8, CostPrice: dec("2000"), BoxPrice: dec("150"), Date: lastMonth,
		},
		{
			ID: "pur-3", ProductName: "Classic Watch", Supplier: "Lahore Imports",
			Quantity: 5, CostPrice: dec("3500"), BoxPrice: dec("250"), Date: now.AddDate(0, 0, -10),
		},
	}

	var inventory []domain.InventoryItem
	for _, p := range purchases {
		next, err := ledger.ApplyPurchase(inventory, p, p.Date)
		if err != nil {
			return nil, fmt.Errorf("seed purchase %s: %w", p.ID, err)
		}
		inventory = next
	}
	for i := range inventory {
		inventory[i].ID = "inv-" + strconv.Itoa(i+1)
		inventory[i].MarketingCost = dec("100")
		inventory[i].DeliveryCost = dec("150")
	}

	sales := []domain.Sale{
		{
			ID: "sale-1", OrderNumber: 1001, ProductName: "Classic Watch",
			CustomerName: "Ahmed Khan", Quantity: 2,
			SellingPrice: dec("5500"), WholesalePrice: dec("3750"), Expenses: dec("300"),
			Date: now.AddDate(0, 0, -7),
		},
		{
			ID: "sale-2", OrderNumber: 1002, ProductName: "Sport Watch",
			CustomerName: "Sara Malik", Quantity: 1,
			SellingPrice: dec("3200"), WholesalePrice: dec("2150"), Expenses: dec("150"),
			Date: now.AddDate(0, 0, -3),
		},
	}

	expenses := []domain.Expense{
		{ID: "exp-1", Description: "Shop rent", Amount: dec("15000"), Category: "Rent", Date: now.AddDate(0, 0, -15)},
		{ID: "exp-2", Description: "Facebook ads", Amount: dec("4000"), Category: "Marketing", Date: now.AddDate(0, 0, -5)},
	}

	return &store.Snapshot{
		Inventory: inventory,
		Purchases: purchases,
		Sales:     sales,
		Expenses:  expenses,
		Partners:  store.DefaultPartners(),
		Settings:  store.DefaultSettings(),
	}, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
