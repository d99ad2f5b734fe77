package projection

import (
	"iter"

	"aws-cost-calc/core/pricing/primitives"
	"aws-cost-calc/core/types"
)

// Option configures a projection run
type Option func(*options)

type options struct {
	observer func(PeriodCostRecord)
}

// WithObserver registers fn to be called with each record as it is produced.
// Without it the engine has no side effects at all.
func WithObserver(fn func(PeriodCostRecord)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Project returns one record per period, ordered by period.
func Project(p Params, opts ...Option) []PeriodCostRecord {
	records := make([]PeriodCostRecord, 0, max(p.Periods, 0))
	for rec := range Periods(p, opts...) {
		records = append(records, rec)
	}
	return records
}

// Periods returns the projection as a lazy sequence. Each iteration starts
// over from InitialStorage, so the sequence can be ranged more than once.
func Periods(p Params, opts ...Option) iter.Seq[PeriodCostRecord] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func(PeriodCostRecord) bool) {
		// constant across periods
		operationCost := OperationBreakdown(p).Total
		recoveryCost := RecoveryBreakdown(p).Total

		storage := p.InitialStorage
		for period := 1; period <= p.Periods; period++ {
			storageCost := primitives.StorageGBMonth(storage, primitives.StorageDeepArchive, p.Rates.Storage).Amount

			rec := PeriodCostRecord{
				Period:        period,
				Storage:       storage,
				StorageCost:   storageCost,
				OperationCost: operationCost,
				RecoveryCost:  recoveryCost,
				TotalCost:     storageCost.Add(operationCost).Add(recoveryCost),
			}

			if o.observer != nil {
				o.observer(rec)
			}
			if !yield(rec) {
				return
			}

			storage = storage.Add(p.PeriodGrowth)
		}
	}
}

// OperationBreakdown prices one period's requests. Delete requests are listed
// but always free, whatever Rates.Delete says.
func OperationBreakdown(p Params) *types.CostBreakdown {
	b := types.NewCostBreakdown(p.Currency)
	b.Add(primitives.ThousandOperations("write_requests", "PUT/COPY/POST/LIST requests", p.Operations.Write, p.Rates.Write))
	b.Add(primitives.ThousandOperations("read_requests", "GET/SELECT requests", p.Operations.Read, p.Rates.Read))
	b.Add(primitives.FreeOperations("delete_requests", "DELETE requests", p.Operations.Delete))
	b.Add(primitives.ThousandOperations("transition_requests", "Lifecycle transition requests", p.Operations.Transition, p.Rates.Transition))
	return b
}

// RecoveryBreakdown prices one period's restores
func RecoveryBreakdown(p Params) *types.CostBreakdown {
	b := types.NewCostBreakdown(p.Currency)
	b.Add(primitives.RetrievalGB(p.Recovery.Standard, primitives.RecoveryStandard, p.Rates.StandardRecovery))
	b.Add(primitives.RetrievalGB(p.Recovery.Bulk, primitives.RecoveryBulk, p.Rates.BulkRecovery))
	return b
}
