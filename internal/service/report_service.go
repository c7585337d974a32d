// internal/service/report_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/princevibe/books-backend/internal/cache"
	"github.com/princevibe/books-backend/internal/ledger"
	"github.com/princevibe/books-backend/internal/store"
)

// topProductCount is how many ranked products a report carries.
const topProductCount = 5

// SnapshotSource is the slice of the gateway the report service needs.
type SnapshotSource interface {
	Snapshot() (*store.Snapshot, error)
	TriggerMigration(ctx context.Context) error
}

type ReportService struct {
	source SnapshotSource
	cache  cache.ReportCache
}

func NewReportService(source SnapshotSource, reportCache cache.ReportCache) *ReportService {
	return &ReportService{source: source, cache: reportCache}
}

// BuildReport assembles the profit-and-loss report for a period: filtered
// aggregates, product ranking, expense breakdown, partner distribution, and
// inventory valuation. Results are cached per period; cache failures only
// log, they never fail the report.
func (s *ReportService) BuildReport(ctx context.Context, period ledger.Period, custom ledger.DateRange, now time.Time) (*ledger.Report, error) {
	if cached, ok, err := s.cache.GetReport(ctx, period, custom); err != nil {
		log.Warn().Err(err).Msg("report cache read failed")
	} else if ok {
		return cached, nil
	}

	snap, err := s.source.Snapshot()
	if err != nil {
		return nil, err
	}

	sales, err := ledger.FilterSales(snap.Sales, period, custom, now)
	if err != nil {
		return nil, err
	}
	expenses, err := ledger.FilterExpenses(snap.Expenses, period, custom, now)
	if err != nil {
		return nil, err
	}

	pnl := ledger.Aggregate(sales, expenses)

	dist, err := ledger.Distribute(pnl.NetProfit, snap.Settings.ReinvestmentPercentage, snap.Partners)
	if err != nil {
		return nil, err
	}

	report := &ledger.Report{
		Period:           period,
		Range:            custom,
		Currency:         snap.Settings.CurrencyCode,
		ProfitLoss:       pnl,
		TopProducts:      ledger.TopProducts(sales, topProductCount),
		ExpenseBreakdown: ledger.ExpenseBreakdown(expenses, pnl.TotalSalesExpenses),
		Distribution:     dist,
		InventoryValue:   ledger.InventoryValue(snap.Inventory),
	}

	if err := s.cache.SetReport(ctx, period, custom, report); err != nil {
		log.Warn().Err(err).Msg("report cache write failed")
	}
	return report, nil
}

// Migrate runs the local-to-remote migration and drops every cached report,
// since the backing data set changed underneath them.
func (s *ReportService) Migrate(ctx context.Context) error {
	if err := s.source.TriggerMigration(ctx); err != nil {
		return err
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("report cache invalidation failed after migration")
	}
	return nil
}
