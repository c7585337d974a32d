package ledger

import (
	"errors"
	"testing"

	"github.com/princevibe/books-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func partner(name, share string) domain.Partner {
	return domain.Partner{Name: name, SharePercentage: dec(share)}
}

func TestDistribute_SplitsProfitByShare(t *testing.T) {
	dist, err := Distribute(dec("20000"), dec("70"), []domain.Partner{
		partner("Ali", "60"),
		partner("Bilal", "40"),
	})
	if err != nil {
		t.Fatalf("Distribute error: %v", err)
	}
	if dist == nil {
		t.Fatal("expected a distribution")
	}

	if !dist.AmountForReinvestment.Equal(dec("14000")) {
		t.Errorf("reinvestment expected 14000, got %s", dist.AmountForReinvestment)
	}
	if !dist.AmountForDistribution.Equal(dec("6000")) {
		t.Errorf("distribution pool expected 6000, got %s", dist.AmountForDistribution)
	}
	if !dist.DistributionPercentage.Equal(dec("30")) {
		t.Errorf("distribution percentage expected 30, got %s", dist.DistributionPercentage)
	}

	if !dist.Shares[0].Amount.Equal(dec("3600")) {
		t.Errorf("Ali expected 3600, got %s", dist.Shares[0].Amount)
	}
	if !dist.Shares[1].Amount.Equal(dec("2400")) {
		t.Errorf("Bilal expected 2400, got %s", dist.Shares[1].Amount)
	}
	if !dist.ShareDistributionValid {
		t.Error("shares sum to 100, expected valid distribution")
	}
}

func TestDistribute_SharesSumToPoolWhenSharesSumTo100(t *testing.T) {
	partnerSets := [][]domain.Partner{
		{partner("A", "50"), partner("B", "50")},
		{partner("A", "33.33"), partner("B", "33.33"), partner("C", "33.34")},
		{partner("A", "100")},
	}
	for i, partners := range partnerSets {
		dist, err := Distribute(dec("9999.99"), dec("70"), partners)
		if err != nil {
			t.Fatalf("set %d: Distribute error: %v", i, err)
		}

		total := decimal.Zero
		for _, s := range dist.Shares {
			total = total.Add(s.Amount)
		}
		if !total.Equal(dist.AmountForDistribution) {
			t.Errorf("set %d: shares total %s != pool %s", i, total, dist.AmountForDistribution)
		}
	}
}

func TestDistribute_FlagsInvalidShareSum(t *testing.T) {
	dist, err := Distribute(dec("20000"), dec("70"), []domain.Partner{
		partner("Ali", "60"),
		partner("Bilal", "50"),
	})
	if err != nil {
		t.Fatalf("Distribute error: %v", err)
	}

	if dist.ShareDistributionValid {
		t.Error("shares sum to 110, expected invalid flag")
	}
	// Shares are still computed proportionally, not blocked.
	if !dist.Shares[0].Amount.Equal(dec("3600")) {
		t.Errorf("Ali expected 3600, got %s", dist.Shares[0].Amount)
	}
	if !dist.Shares[1].Amount.Equal(dec("3000")) {
		t.Errorf("Bilal expected 3000, got %s", dist.Shares[1].Amount)
	}
}

func TestDistribute_ToleratesTinyShareDrift(t *testing.T) {
	dist, err := Distribute(dec("1000"), dec("70"), []domain.Partner{
		partner("A", "49.996"),
		partner("B", "50.0"),
	})
	if err != nil {
		t.Fatalf("Distribute error: %v", err)
	}
	if !dist.ShareDistributionValid {
		t.Error("drift within 0.01 tolerance should stay valid")
	}
}

func TestDistribute_NoPartnersMeansNoDistribution(t *testing.T) {
	dist, err := Distribute(dec("20000"), dec("70"), nil)
	if err != nil {
		t.Fatalf("Distribute error: %v", err)
	}
	if dist != nil {
		t.Fatalf("expected nil distribution, got %+v", dist)
	}
}

func TestDistribute_LossPropagatesAsNegativeAmounts(t *testing.T) {
	dist, err := Distribute(dec("-10000"), dec("70"), []domain.Partner{
		partner("Ali", "60"),
		partner("Bilal", "40"),
	})
	if err != nil {
		t.Fatalf("Distribute error: %v", err)
	}

	if !dist.AmountForReinvestment.Equal(dec("-7000")) {
		t.Errorf("reinvestment expected -7000, got %s", dist.AmountForReinvestment)
	}
	if !dist.AmountForDistribution.Equal(dec("-3000")) {
		t.Errorf("pool expected -3000, got %s", dist.AmountForDistribution)
	}
	if !dist.Shares[0].Amount.Equal(dec("-1800")) {
		t.Errorf("Ali expected -1800, got %s", dist.Shares[0].Amount)
	}
}

func TestDistribute_RejectsOutOfRangeReinvestment(t *testing.T) {
	for _, pct := range []string{"-1", "100.01"} {
		_, err := Distribute(dec("100"), dec(pct), []domain.Partner{partner("A", "100")})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("reinvestment %s: expected ValidationError, got %v", pct, err)
		}
	}
}
