// internal/ledger/report.go
package ledger

import (
	"github.com/shopspring/decimal"
)

// Report is the full profit-and-loss report for one period: the aggregate
// figures plus the product ranking, expense breakdown, partner distribution,
// and current inventory valuation.
type Report struct {
	Period           Period               `json:"period"`
	Range            DateRange            `json:"range"`
	Currency         string               `json:"currency"`
	ProfitLoss       ProfitLoss           `json:"profit_loss"`
	TopProducts      []ProductPerformance `json:"top_products"`
	ExpenseBreakdown []CategoryAmount     `json:"expense_breakdown"`
	Distribution     *Distribution        `json:"distribution,omitempty"`
	InventoryValue   decimal.Decimal      `json:"inventory_value"`
}
