package projection

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSummarizeSumsEachColumn(t *testing.T) {
	p := sampleParams()
	p.Periods = 3
	p.InitialStorage = dec("1000")
	p.PeriodGrowth = dec("1000")

	s := Summarize(Project(p))

	if s.Periods != 3 {
		t.Errorf("Expected 3 periods, got %d", s.Periods)
	}
	// 1000 + 2000 + 3000 GB at 0.00099
	assertDecimal(t, "storage cost", "5.94", s.StorageCost)
	assertDecimal(t, "operation cost", "0.15162", s.OperationCost)
	assertDecimal(t, "recovery cost", "67.5", s.RecoveryCost)
	assertDecimal(t, "total cost", "73.59162", s.TotalCost)
	assertDecimal(t, "final storage", "3000", s.FinalStorage)
	// last period: 2.97 + 0.05054 + 22.5
	assertDecimal(t, "peak period", "25.52054", s.PeakPeriodCost)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	if s.Periods != 0 {
		t.Errorf("Expected 0 periods, got %d", s.Periods)
	}
	for name, v := range map[string]decimal.Decimal{
		"storage":  s.StorageCost,
		"total":    s.TotalCost,
		"final":    s.FinalStorage,
		"peak":     s.PeakPeriodCost,
		"recovery": s.RecoveryCost,
	} {
		if !v.IsZero() {
			t.Errorf("%s: expected zero, got %s", name, v)
		}
	}
}
