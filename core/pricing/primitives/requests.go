// Package primitives - Request pricing primitives
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"

	"aws-cost-calc/core/types"
)

// ThousandOperations prices API operations billed per 1,000 requests
// (S3 PUT/GET, lifecycle transitions).
func ThousandOperations(name, label string, count int64, ratePer1K decimal.Decimal) types.CostUnit {
	thousands := decimal.NewFromInt(count).Shift(-3)
	return price(
		name,
		label,
		MeasureThousandOps,
		thousands,
		ratePer1K,
		fmt.Sprintf("%d requests / 1000 × %s", count, ratePer1K.String()),
	)
}

// FreeOperations records operations that are never billed. The quantity is
// kept for display but the rate is always zero, whatever was configured.
func FreeOperations(name, label string, count int64) types.CostUnit {
	thousands := decimal.NewFromInt(count).Shift(-3)
	return price(
		name,
		label,
		MeasureThousandOps,
		thousands,
		decimal.Zero,
		fmt.Sprintf("%d requests (free)", count),
	)
}
