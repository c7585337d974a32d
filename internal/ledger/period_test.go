package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/princevibe/books-backend/internal/domain"
)

func saleOn(date time.Time) domain.Sale {
	return domain.Sale{Quantity: 1, Date: date}
}

func saleDates(sales []domain.Sale) []time.Time {
	dates := make([]time.Time, len(sales))
	for i, s := range sales {
		dates[i] = s.Date
	}
	return dates
}

func TestFilterSales_AllReturnsInputUnchanged(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		saleOn(now.AddDate(-2, 0, 0)),
		saleOn(now.AddDate(0, -1, 0)),
		saleOn(now),
	}

	filtered, err := FilterSales(sales, PeriodAll, DateRange{}, now)
	if err != nil {
		t.Fatalf("FilterSales error: %v", err)
	}
	if len(filtered) != len(sales) {
		t.Fatalf("expected %d sales, got %d", len(sales), len(filtered))
	}
	for i := range sales {
		if !filtered[i].Date.Equal(sales[i].Date) {
			t.Errorf("order changed at index %d", i)
		}
	}
}

func TestFilterSales_ThisMonth(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		saleOn(time.Date(2025, time.February, 28, 23, 59, 0, 0, time.UTC)), // out
		saleOn(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),       // in, start inclusive
		saleOn(now), // in, end inclusive
		saleOn(time.Date(2025, time.March, 15, 12, 0, 1, 0, time.UTC)), // out, after now
	}

	filtered, err := FilterSales(sales, PeriodThisMonth, DateRange{}, now)
	if err != nil {
		t.Fatalf("FilterSales error: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 sales, got %d: %v", len(filtered), saleDates(filtered))
	}
}

func TestFilterSales_LastMonthIsInclusiveOfFinalInstant(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	lastInstant := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	sales := []domain.Sale{
		saleOn(time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)), // out
		saleOn(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)),    // in
		saleOn(lastInstant), // in
		saleOn(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)), // out
	}

	filtered, err := FilterSales(sales, PeriodLastMonth, DateRange{}, now)
	if err != nil {
		t.Fatalf("FilterSales error: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 sales, got %d: %v", len(filtered), saleDates(filtered))
	}
}

func TestFilterSales_ThisYear(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		saleOn(time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)), // out
		saleOn(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)),      // in
		saleOn(now), // in
	}

	filtered, err := FilterSales(sales, PeriodThisYear, DateRange{}, now)
	if err != nil {
		t.Fatalf("FilterSales error: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(filtered))
	}
}

func TestFilterSales_CustomRangeInclusiveBounds(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	rng := DateRange{
		Start: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
	}
	sales := []domain.Sale{
		saleOn(rng.Start.Add(-time.Second)), // out
		saleOn(rng.Start),                   // in
		saleOn(rng.End),                     // in
		saleOn(rng.End.Add(time.Second)),    // out
	}

	filtered, err := FilterSales(sales, PeriodCustom, rng, now)
	if err != nil {
		t.Fatalf("FilterSales error: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(filtered))
	}
}

func TestFilterSales_IncompleteCustomRangeFallsBackToAll(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		saleOn(time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)),
		saleOn(now),
	}

	rng := DateRange{Start: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)}
	filtered, err := FilterSales(sales, PeriodCustom, rng, now)
	if err != nil {
		t.Fatalf("FilterSales error: %v", err)
	}
	if len(filtered) != len(sales) {
		t.Fatalf("expected all %d sales, got %d", len(sales), len(filtered))
	}
}

func TestFilterSales_UnknownPeriodIsValidationError(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	_, err := FilterSales(nil, Period("quarterly"), DateRange{}, now)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFilterExpenses_ThisMonth(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	expenses := []domain.Expense{
		{Amount: dec("10"), Date: time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)},
		{Amount: dec("20"), Date: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)},
	}

	filtered, err := FilterExpenses(expenses, PeriodThisMonth, DateRange{}, now)
	if err != nil {
		t.Fatalf("FilterExpenses error: %v", err)
	}
	if len(filtered) != 1 || !filtered[0].Amount.Equal(dec("20")) {
		t.Fatalf("expected only the March expense, got %d rows", len(filtered))
	}
}
