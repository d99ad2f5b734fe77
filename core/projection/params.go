package projection

import (
	"github.com/shopspring/decimal"

	"aws-cost-calc/core/types"
)

// OperationCounts are the requests issued in every period
type OperationCounts struct {
	// Write covers PUT/COPY/POST/LIST requests
	Write int64 `json:"write" validate:"nonneg"`

	// Read covers GET/SELECT requests
	Read int64 `json:"read" validate:"nonneg"`

	Delete int64 `json:"delete" validate:"nonneg"`

	// Transition covers lifecycle transitions into the archive class
	Transition int64 `json:"transition" validate:"nonneg"`
}

// RecoveryVolumes are the GB restored in every period, per tier
type RecoveryVolumes struct {
	Standard decimal.Decimal `json:"standard" validate:"nonneg"`
	Bulk     decimal.Decimal `json:"bulk" validate:"nonneg"`
}

// UnitRates are the prices applied in every period.
// Operation rates are per 1,000 requests; recovery rates are per GB.
type UnitRates struct {
	Storage decimal.Decimal `json:"storage" validate:"nonneg"`

	Write      decimal.Decimal `json:"write" validate:"nonneg"`
	Read       decimal.Decimal `json:"read" validate:"nonneg"`
	Delete     decimal.Decimal `json:"delete" validate:"nonneg"`
	Transition decimal.Decimal `json:"transition" validate:"nonneg"`

	StandardRecovery decimal.Decimal `json:"standard_recovery" validate:"nonneg"`
	BulkRecovery     decimal.Decimal `json:"bulk_recovery" validate:"nonneg"`
}

// Params is one simulation's input. It is built fresh for each run.
type Params struct {
	// Periods is the number of periods to project; must be >= 1
	Periods int `json:"periods" validate:"min=1,max=1200"`

	// InitialStorage is the GB stored during period 1
	InitialStorage decimal.Decimal `json:"initial_storage" validate:"nonneg"`

	// PeriodGrowth is the GB added after each period
	PeriodGrowth decimal.Decimal `json:"period_growth" validate:"nonneg"`

	Operations OperationCounts `json:"operations"`
	Recovery   RecoveryVolumes `json:"recovery"`
	Rates      UnitRates       `json:"rates"`

	// Currency labels the breakdowns; rates are never converted
	Currency types.Currency `json:"currency,omitempty"`
}

// PeriodCostRecord is the cost of one period
type PeriodCostRecord struct {
	// Period is 1-based
	Period int `json:"period"`

	// Storage is the GB billed this period, before growth is applied
	Storage decimal.Decimal `json:"storage"`

	StorageCost   decimal.Decimal `json:"storage_cost"`
	OperationCost decimal.Decimal `json:"operation_cost"`
	RecoveryCost  decimal.Decimal `json:"recovery_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}
