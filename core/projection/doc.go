// Package projection projects archive storage costs across billing periods.
//
// A projection starts from an initial storage volume that grows by a fixed
// amount after every period. Request counts, recovery volumes and unit rates
// are constant for the whole run. For each period the engine records:
//
//	StorageCost   = Storage × Rates.Storage
//	OperationCost = Σ (count / 1000) × rate   over write, read, transition
//	                (delete requests are always free)
//	RecoveryCost  = Standard × Rates.StandardRecovery + Bulk × Rates.BulkRecovery
//	TotalCost     = StorageCost + OperationCost + RecoveryCost
//
// and then applies growth, so growth only affects the following period.
// Recovery volumes are a flat charge repeated every period, not a one-time
// restore.
//
// The engine is a pure function over decimal arithmetic: it does no I/O, holds
// no state between calls and never validates its input. Callers reject
// Periods < 1 and negative values before invoking it (see core/validation).
//
// Example usage:
//
//	records := projection.Project(params)
//	summary := projection.Summarize(records)
//
//	// or lazily, stopping whenever the caller wants
//	for rec := range projection.Periods(params) {
//		...
//	}
package projection
