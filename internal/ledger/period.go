// internal/ledger/period.go
package ledger

import (
	"time"

	"github.com/princevibe/books-backend/internal/domain"
)

// Period selects the reporting window for sales and expense filtering.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodThisMonth Period = "this-month"
	PeriodLastMonth Period = "last-month"
	PeriodThisYear  Period = "this-year"
	PeriodCustom    Period = "custom"
)

// DateRange is an explicit window for PeriodCustom. If either bound is the
// zero time the custom period degrades to PeriodAll.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) complete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// window resolves a period to its inclusive [start, end] bounds relative to
// now. The second return value is false when no filtering applies.
func window(period Period, custom DateRange, now time.Time) (DateRange, bool, error) {
	switch period {
	case PeriodAll:
		return DateRange{}, false, nil
	case PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: start, End: now}, true, nil
	case PeriodLastMonth:
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start := firstOfThis.AddDate(0, -1, 0)
		return DateRange{Start: start, End: firstOfThis.Add(-time.Nanosecond)}, true, nil
	case PeriodThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: start, End: now}, true, nil
	case PeriodCustom:
		if !custom.complete() {
			// Documented fallback: an incomplete custom range means "all",
			// not an error.
			return DateRange{}, false, nil
		}
		return custom, true, nil
	default:
		return DateRange{}, false, domain.NewValidationError("period", "unknown period "+string(period))
	}
}

func inWindow(date time.Time, rng DateRange) bool {
	return !date.Before(rng.Start) && !date.After(rng.End)
}

// FilterSales returns the sales whose date falls inside the period window,
// bounds inclusive. PeriodAll returns the input unchanged.
func FilterSales(sales []domain.Sale, period Period, custom DateRange, now time.Time) ([]domain.Sale, error) {
	rng, bounded, err := window(period, custom, now)
	if err != nil {
		return nil, err
	}
	if !bounded {
		return sales, nil
	}

	filtered := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if inWindow(s.Date, rng) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// FilterExpenses returns the expenses whose date falls inside the period
// window, bounds inclusive. PeriodAll returns the input unchanged.
func FilterExpenses(expenses []domain.Expense, period Period, custom DateRange, now time.Time) ([]domain.Expense, error) {
	rng, bounded, err := window(period, custom, now)
	if err != nil {
		return nil, err
	}
	if !bounded {
		return expenses, nil
	}

	filtered := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if inWindow(e.Date, rng) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
