// internal/gateway/gateway.go
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/princevibe/books-backend/internal/repository"
	"github.com/princevibe/books-backend/internal/store"
)

// Phase is the gateway lifecycle phase. The backing choice is fixed once
// probing completes; only a restart can re-probe.
type Phase string

const (
	PhaseUninitialized Phase = "UNINITIALIZED"
	PhaseProbing       Phase = "PROBING"
	PhaseMigrating     Phase = "MIGRATING"
	PhaseReady         Phase = "READY"
)

// Backing names which store the gateway reads from.
type Backing string

const (
	BackingNone   Backing = ""
	BackingRemote Backing = "REMOTE"
	BackingLocal  Backing = "LOCAL"
)

// State is a point-in-time view of the gateway for status endpoints and
// tests.
type State struct {
	Phase     Phase   `json:"phase"`
	Backing   Backing `json:"backing"`
	LastError string  `json:"last_error,omitempty"`
}

// ErrNotLocal is returned when a migration is requested while the gateway
// is not reading from the local store.
var ErrNotLocal = errors.New("migration requires a local-backed gateway")

// Gateway probes the remote store at startup, picks a backing store, loads
// the full dataset, and serves it as an in-memory snapshot. A local-backed
// gateway can migrate its data to the remote store on explicit request.
type Gateway struct {
	remote       repository.Books
	local        repository.Books
	probeTimeout time.Duration

	mu       sync.Mutex
	phase    Phase
	backing  Backing
	snapshot *store.Snapshot
	lastErr  error
}

// New builds an uninitialized gateway. remote may be nil when no remote
// store is configured; the gateway then goes straight to local.
func New(remote, local repository.Books, probeTimeout time.Duration) *Gateway {
	return &Gateway{
		remote:       remote,
		local:        local,
		probeTimeout: probeTimeout,
		phase:        PhaseUninitialized,
		backing:      BackingNone,
	}
}

// Init probes the remote store, selects the backing store, and performs the
// initial load. It must be called exactly once before any read. A failed
// remote probe or load falls back to local; a failed local load is fatal
// and leaves the gateway unusable.
func (g *Gateway) Init(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseUninitialized {
		return fmt.Errorf("gateway already initialized (phase %s)", g.phase)
	}
	g.phase = PhaseProbing

	if g.probeRemote(ctx) {
		snap, err := loadSnapshot(ctx, g.remote)
		if err == nil {
			g.backing = BackingRemote
			g.snapshot = snap
			g.phase = PhaseReady
			log.Info().Msg("gateway ready on remote store")
			return nil
		}
		g.lastErr = err
		log.Warn().Err(err).Msg("remote load failed after successful probe, falling back to local store")
	}

	snap, err := loadSnapshot(ctx, g.local)
	if err != nil {
		g.phase = PhaseUninitialized
		g.lastErr = err
		return fmt.Errorf("local store load failed: %w", err)
	}

	g.backing = BackingLocal
	g.snapshot = snap
	g.phase = PhaseReady
	log.Info().Msg("gateway ready on local store")
	return nil
}

// InitLocal loads from the local store without probing the remote, keeping
// the configured remote available as a migration target only. Migration
// tooling uses it: a healthy remote must not capture the backing before the
// local data has been copied over.
func (g *Gateway) InitLocal(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseUninitialized {
		return fmt.Errorf("gateway already initialized (phase %s)", g.phase)
	}

	snap, err := loadSnapshot(ctx, g.local)
	if err != nil {
		g.lastErr = err
		return fmt.Errorf("local store load failed: %w", err)
	}

	g.backing = BackingLocal
	g.snapshot = snap
	g.phase = PhaseReady
	log.Info().Msg("gateway ready on local store")
	return nil
}

// probeRemote health-checks the remote store under a bounded timeout so an
// unreachable remote cannot delay the local fallback.
func (g *Gateway) probeRemote(ctx context.Context) bool {
	if g.remote == nil {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, g.probeTimeout)
	defer cancel()

	if err := g.remote.Ping(probeCtx); err != nil {
		g.lastErr = err
		log.Warn().Err(err).Dur("timeout", g.probeTimeout).Msg("remote store probe failed")
		return false
	}
	return true
}

// State reports the current phase and backing.
func (g *Gateway) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := State{Phase: g.phase, Backing: g.backing}
	if g.lastErr != nil {
		s.LastError = g.lastErr.Error()
	}
	return s
}

// Snapshot returns the loaded dataset. Callers treat it as read-only.
func (g *Gateway) Snapshot() (*store.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseReady || g.snapshot == nil {
		return nil, fmt.Errorf("gateway not ready (phase %s)", g.phase)
	}
	return g.snapshot, nil
}

// TriggerMigration copies every local record into the remote store, then
// clears the local store and switches the backing to remote. Writes upsert
// per record, so a retried migration is safe; there is no rollback. On any
// failure the backing stays local and partial remote writes remain.
func (g *Gateway) TriggerMigration(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseReady || g.backing != BackingLocal {
		return ErrNotLocal
	}
	if g.remote == nil {
		return ErrNotLocal
	}

	g.phase = PhaseMigrating
	log.Info().Msg("starting local to remote migration")

	// Reload from disk rather than trusting the in-memory snapshot, so
	// records written since startup are not left behind.
	snap, err := loadSnapshot(ctx, g.local)
	if err != nil {
		return g.abortMigration("load local snapshot", err)
	}

	if err := g.remote.Replace(ctx, snap); err != nil {
		return g.abortMigration("write remote store", err)
	}

	migrated, err := loadSnapshot(ctx, g.remote)
	if err != nil {
		return g.abortMigration("reload from remote", err)
	}

	if err := g.local.Clear(ctx); err != nil {
		// Remote now holds the data; a stale local copy is harmless
		// because the backing switches to remote below.
		log.Warn().Err(err).Msg("could not clear local store after migration")
	}

	g.snapshot = migrated
	g.backing = BackingRemote
	g.phase = PhaseReady
	g.lastErr = nil
	log.Info().
		Int("inventory", len(migrated.Inventory)).
		Int("sales", len(migrated.Sales)).
		Msg("migration complete, gateway now on remote store")
	return nil
}

func (g *Gateway) abortMigration(stage string, err error) error {
	g.phase = PhaseReady
	g.lastErr = err
	log.Error().Err(err).Str("stage", stage).Msg("migration aborted, staying on local store")
	return fmt.Errorf("migration failed at %s: %w", stage, err)
}

// loadSnapshot fans the six collection loads out concurrently and joins.
// Any single failure fails the whole load; there is no partial result.
func loadSnapshot(ctx context.Context, repo repository.Books) (*store.Snapshot, error) {
	snap := &store.Snapshot{}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		items, err := repo.Inventory(ctx)
		if err != nil {
			return fmt.Errorf("inventory: %w", err)
		}
		snap.Inventory = items
		return nil
	})
	eg.Go(func() error {
		purchases, err := repo.Purchases(ctx)
		if err != nil {
			return fmt.Errorf("purchases: %w", err)
		}
		snap.Purchases = purchases
		return nil
	})
	eg.Go(func() error {
		sales, err := repo.Sales(ctx)
		if err != nil {
			return fmt.Errorf("sales: %w", err)
		}
		snap.Sales = sales
		return nil
	})
	eg.Go(func() error {
		expenses, err := repo.Expenses(ctx)
		if err != nil {
			return fmt.Errorf("expenses: %w", err)
		}
		snap.Expenses = expenses
		return nil
	})
	eg.Go(func() error {
		partners, err := repo.Partners(ctx)
		if err != nil {
			return fmt.Errorf("partners: %w", err)
		}
		snap.Partners = partners
		return nil
	})
	eg.Go(func() error {
		settings, err := repo.Settings(ctx)
		if err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		snap.Settings = settings
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
