// internal/api/handlers/report_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/princevibe/books-backend/internal/ledger"
	"github.com/princevibe/books-backend/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetProfitLoss serves the period profit-and-loss report.
// Query params: period (all|this-month|last-month|this-year|custom),
// start and end (RFC 3339 or YYYY-MM-DD) for the custom period.
func (h *ReportHandler) GetProfitLoss(c *gin.Context) {
	period := ledger.Period(c.DefaultQuery("period", string(ledger.PeriodAll)))

	custom, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.BuildReport(c.Request.Context(), period, custom, time.Now())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report": report,
		"formatted": gin.H{
			"total_revenue": FormatMoney(report.ProfitLoss.TotalRevenue, report.Currency),
			"net_profit":    FormatMoney(report.ProfitLoss.NetProfit, report.Currency),
		},
	})
}

// parseDateRange accepts RFC 3339 timestamps or plain dates. Either bound
// may be empty; the period filter treats an incomplete range as "all".
func parseDateRange(start, end string) (ledger.DateRange, error) {
	var rng ledger.DateRange

	if start != "" {
		t, err := parseDate(start)
		if err != nil {
			return ledger.DateRange{}, fmt.Errorf("invalid start date %q", start)
		}
		rng.Start = t
	}
	if end != "" {
		t, err := parseDate(end)
		if err != nil {
			return ledger.DateRange{}, fmt.Errorf("invalid end date %q", end)
		}
		rng.End = t
	}
	return rng, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// FormatMoney renders an amount for display with the configured currency
// code, rounded under the shared presentation policy.
func FormatMoney(amount decimal.Decimal, currency string) string {
	return ledger.RoundMoney(amount).StringFixed(2) + " " + currency
}
