// internal/ledger/decimal.go
package ledger

import (
	"github.com/princevibe/books-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// safeDivide returns numerator/denominator, or zero when the denominator is
// zero. Every percentage computation in this package goes through it so the
// zero-denominator policy lives in one place.
func safeDivide(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}

// RoundMoney applies the presentation rounding policy: round-half-even to
// two decimal places. Intermediate calculations are never rounded.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError(field, "must not be negative")
	}
	return nil
}
