// internal/ledger/distribution.go
package ledger

import (
	"github.com/princevibe/books-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// shareTolerance is how far the partner share sum may drift from 100 before
// the distribution is flagged inconsistent.
var shareTolerance = decimal.NewFromFloat(0.01)

// PartnerShare is one partner's cut of the distribution pool.
type PartnerShare struct {
	Partner domain.Partner  `json:"partner"`
	Amount  decimal.Decimal `json:"amount"`
}

// Distribution splits a period's net profit between reinvestment and the
// partner pool. A negative net profit flows through as negative amounts: a
// loss is distributed as a loss.
type Distribution struct {
	NetProfit              decimal.Decimal `json:"net_profit"`
	ReinvestmentPercentage decimal.Decimal `json:"reinvestment_percentage"`
	DistributionPercentage decimal.Decimal `json:"distribution_percentage"`
	AmountForReinvestment  decimal.Decimal `json:"amount_for_reinvestment"`
	AmountForDistribution  decimal.Decimal `json:"amount_for_distribution"`
	Shares                 []PartnerShare  `json:"shares"`
	ShareDistributionValid bool            `json:"share_distribution_valid"`
}

// Distribute allocates netProfit across partners by share percentage.
// With no partners there is nothing to allocate and the result is nil.
// Share percentages not summing to 100 do not block the computation; the
// result just carries ShareDistributionValid=false so callers can warn.
func Distribute(netProfit, reinvestmentPercentage decimal.Decimal, partners []domain.Partner) (*Distribution, error) {
	if reinvestmentPercentage.IsNegative() || reinvestmentPercentage.GreaterThan(hundred) {
		return nil, domain.NewValidationError("reinvestment_percentage", "must be between 0 and 100")
	}
	if len(partners) == 0 {
		return nil, nil
	}

	distributionPercentage := hundred.Sub(reinvestmentPercentage)
	amountForReinvestment := netProfit.Mul(reinvestmentPercentage).Div(hundred)
	amountForDistribution := netProfit.Mul(distributionPercentage).Div(hundred)

	totalShares := decimal.Zero
	shares := make([]PartnerShare, 0, len(partners))
	for _, p := range partners {
		if err := requireNonNegative("share_percentage", p.SharePercentage); err != nil {
			return nil, err
		}
		totalShares = totalShares.Add(p.SharePercentage)
		shares = append(shares, PartnerShare{
			Partner: p,
			Amount:  amountForDistribution.Mul(p.SharePercentage).Div(hundred),
		})
	}

	return &Distribution{
		NetProfit:              netProfit,
		ReinvestmentPercentage: reinvestmentPercentage,
		DistributionPercentage: distributionPercentage,
		AmountForReinvestment:  amountForReinvestment,
		AmountForDistribution:  amountForDistribution,
		Shares:                 shares,
		ShareDistributionValid: totalShares.Sub(hundred).Abs().LessThanOrEqual(shareTolerance),
	}, nil
}
