// internal/repository/localstore/store.go
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/princevibe/books-backend/internal/store"
)

// One file per entity, mirroring the one-key-per-entity fallback layout.
const (
	inventoryFile = "inventory.json"
	purchasesFile = "purchases.json"
	salesFile     = "sales.json"
	expensesFile  = "expenses.json"
	partnersFile  = "partners.json"
	settingsFile  = "settings.json"
)

// Store is the local fallback: plain JSON files under a data directory.
// It seeds default partners and settings the first time an empty store is
// read, so a fresh installation always has a workable ledger.
type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.dir); err != nil {
		return &domain.TransientIOError{Op: "local store ping", Err: err}
	}
	return nil
}

func (s *Store) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[domain.InventoryItem](s, inventoryFile)
}

func (s *Store) Purchases(ctx context.Context) ([]domain.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[domain.Purchase](s, purchasesFile)
}

func (s *Store) Sales(ctx context.Context) ([]domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[domain.Sale](s, salesFile)
}

func (s *Store) Expenses(ctx context.Context) ([]domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[domain.Expense](s, expensesFile)
}

// Partners seeds the two 50/50 default partners when none have been saved.
func (s *Store) Partners(ctx context.Context) ([]domain.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	partners, err := readCollection[domain.Partner](s, partnersFile)
	if err != nil {
		return nil, err
	}
	if len(partners) > 0 {
		return partners, nil
	}

	defaults := store.DefaultPartners()
	if err := s.writeFile(partnersFile, defaults); err != nil {
		return nil, err
	}
	log.Info().Msg("seeded default partners into local store")
	return defaults, nil
}

// Settings seeds the business defaults when no settings file exists.
func (s *Store) Settings(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(settingsFile))
	if os.IsNotExist(err) {
		defaults := store.DefaultSettings()
		if werr := s.writeFile(settingsFile, defaults); werr != nil {
			return domain.Settings{}, werr
		}
		return defaults, nil
	}
	if err != nil {
		return domain.Settings{}, &domain.TransientIOError{Op: "read " + settingsFile, Err: err}
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to decode %s: %w", settingsFile, err)
	}
	return settings, nil
}

func (s *Store) Replace(ctx context.Context, snap *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile(inventoryFile, snap.Inventory); err != nil {
		return err
	}
	if err := s.writeFile(purchasesFile, snap.Purchases); err != nil {
		return err
	}
	if err := s.writeFile(salesFile, snap.Sales); err != nil {
		return err
	}
	if err := s.writeFile(expensesFile, snap.Expenses); err != nil {
		return err
	}
	if err := s.writeFile(partnersFile, snap.Partners); err != nil {
		return err
	}
	return s.writeFile(settingsFile, snap.Settings)
}

// Clear removes every entity file. A later read sees a fresh store and
// seeds defaults again, which is what a post-migration local store wants.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{inventoryFile, purchasesFile, salesFile, expensesFile, partnersFile, settingsFile} {
		if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
			return &domain.TransientIOError{Op: "remove " + name, Err: err}
		}
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func readCollection[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, &domain.TransientIOError{Op: "read " + name, Err: err}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return records, nil
}

// writeFile writes via a temp file and rename so a crash mid-write never
// leaves a truncated entity file behind.
func (s *Store) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return &domain.TransientIOError{Op: "write " + name, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &domain.TransientIOError{Op: "write " + name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.TransientIOError{Op: "write " + name, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return &domain.TransientIOError{Op: "write " + name, Err: err}
	}
	return nil
}
