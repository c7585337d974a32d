// internal/repository/books.go
package repository

import (
	"context"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/princevibe/books-backend/internal/store"
)

// Books is the persistence contract shared by the remote stores (postgres,
// mongodb) and the local fallback. The gateway only reads whole collections;
// it never touches individual records, so the interface stays bulk-oriented.
type Books interface {
	// Ping is the health probe. Callers bound it with a context deadline.
	Ping(ctx context.Context) error

	Inventory(ctx context.Context) ([]domain.InventoryItem, error)
	Purchases(ctx context.Context) ([]domain.Purchase, error)
	Sales(ctx context.Context) ([]domain.Sale, error)
	Expenses(ctx context.Context) ([]domain.Expense, error)
	Partners(ctx context.Context) ([]domain.Partner, error)
	Settings(ctx context.Context) (domain.Settings, error)

	// Replace clears every collection and writes the snapshot in its place.
	// Inserts upsert by record ID so a retried migration cannot duplicate.
	Replace(ctx context.Context, snap *store.Snapshot) error

	// Clear empties every collection. The gateway calls it on the local
	// store after a successful migration.
	Clear(ctx context.Context) error
}
