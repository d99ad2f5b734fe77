package calculators

import (
	"github.com/shopspring/decimal"

	"aws-cost-calc/core/pricing/primitives"
	"aws-cost-calc/core/types"
)

// EndpointParams are the inputs of a private network endpoint estimate
type EndpointParams struct {
	// HourlyRatePerAZ is charged for every AZ the endpoint is deployed in
	HourlyRatePerAZ decimal.Decimal `json:"hourly_rate_per_az" validate:"nonneg"`
	AZCount         int64           `json:"az_count" validate:"min=1"`
	Hours           int64           `json:"hours" validate:"min=1"`

	RatePerGB   decimal.Decimal `json:"rate_per_gb" validate:"nonneg"`
	ProcessedGB decimal.Decimal `json:"processed_gb" validate:"nonneg"`

	Currency types.Currency `json:"currency,omitempty"`
}

// EndpointEstimate is the monthly cost of an endpoint
type EndpointEstimate struct {
	// HourlyCost is HourlyRatePerAZ × AZCount
	HourlyCost decimal.Decimal `json:"hourly_cost"`

	// AZCost is HourlyCost × Hours
	AZCost decimal.Decimal `json:"az_cost"`

	// DataCost is RatePerGB × ProcessedGB
	DataCost decimal.Decimal `json:"data_cost"`

	Total decimal.Decimal `json:"total"`

	Breakdown *types.CostBreakdown `json:"breakdown"`
}

// EstimateEndpoint prices an endpoint for one month
func EstimateEndpoint(p EndpointParams) EndpointEstimate {
	azHours := primitives.HourlyCharge("az_hours", "Endpoint AZ hours", p.AZCount, p.Hours, p.HourlyRatePerAZ)
	data := primitives.DataProcessedGB(p.ProcessedGB, "endpoint", p.RatePerGB)

	b := types.NewCostBreakdown(p.Currency)
	b.Add(azHours)
	b.Add(data)

	return EndpointEstimate{
		HourlyCost: p.HourlyRatePerAZ.Mul(decimal.NewFromInt(p.AZCount)),
		AZCost:     azHours.Amount,
		DataCost:   data.Amount,
		Total:      b.Total,
		Breakdown:  b,
	}
}
