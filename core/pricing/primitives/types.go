// Package primitives - Centralized pricing math
// Calculators declare intent, not do math.
// All pricing logic flows through these primitives.
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"

	"aws-cost-calc/core/types"
)

// TransferDirection for data transfer pricing
type TransferDirection string

const TransferOutbound TransferDirection = "outbound"

// Measures used across the calculators
const (
	MeasureGBMonth     = "GB-month"
	MeasureGB          = "GB"
	MeasureThousandOps = "1K-requests"
	MeasureHours       = "hours"
)

// price builds a unit whose Amount is exactly Quantity * Rate
func price(name, label, measure string, quantity, rate decimal.Decimal, formula string) types.CostUnit {
	return types.CostUnit{
		Name:     name,
		Label:    label,
		Measure:  measure,
		Quantity: quantity,
		Rate:     rate,
		Amount:   quantity.Mul(rate),
		Formula:  formula,
	}
}

func describe(quantity decimal.Decimal, measure string, rate decimal.Decimal) string {
	return fmt.Sprintf("%s %s × %s", quantity.String(), measure, rate.String())
}
