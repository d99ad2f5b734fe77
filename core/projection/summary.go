package projection

import "github.com/shopspring/decimal"

// Summary aggregates a projection for display
type Summary struct {
	Periods int `json:"periods"`

	// FinalStorage is the GB billed in the last period
	FinalStorage decimal.Decimal `json:"final_storage"`

	StorageCost   decimal.Decimal `json:"storage_cost"`
	OperationCost decimal.Decimal `json:"operation_cost"`
	RecoveryCost  decimal.Decimal `json:"recovery_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`

	// PeakPeriodCost is the highest single-period total
	PeakPeriodCost decimal.Decimal `json:"peak_period_cost"`
}

// Summarize sums each cost column across records
func Summarize(records []PeriodCostRecord) Summary {
	s := Summary{
		Periods:        len(records),
		FinalStorage:   decimal.Zero,
		StorageCost:    decimal.Zero,
		OperationCost:  decimal.Zero,
		RecoveryCost:   decimal.Zero,
		TotalCost:      decimal.Zero,
		PeakPeriodCost: decimal.Zero,
	}

	for i, rec := range records {
		s.StorageCost = s.StorageCost.Add(rec.StorageCost)
		s.OperationCost = s.OperationCost.Add(rec.OperationCost)
		s.RecoveryCost = s.RecoveryCost.Add(rec.RecoveryCost)
		s.TotalCost = s.TotalCost.Add(rec.TotalCost)
		if i == 0 || rec.TotalCost.GreaterThan(s.PeakPeriodCost) {
			s.PeakPeriodCost = rec.TotalCost
		}
	}
	if len(records) > 0 {
		s.FinalStorage = records[len(records)-1].Storage
	}

	return s
}
