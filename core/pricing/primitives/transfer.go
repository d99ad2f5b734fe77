// Package primitives - Data transfer and hourly pricing primitives
// Bandwidth, egress, processed data, port/AZ hours
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"

	"aws-cost-calc/core/types"
)

// DataTransferGB prices data moved in the given direction
func DataTransferGB(gb decimal.Decimal, direction TransferDirection, ratePerGB decimal.Decimal) types.CostUnit {
	return price(
		"data_transfer",
		fmt.Sprintf("Data transfer (%s)", direction),
		MeasureGB,
		gb,
		ratePerGB,
		describe(gb, MeasureGB, ratePerGB),
	)
}

// DataProcessedGB prices data processed by a managed network component
func DataProcessedGB(gb decimal.Decimal, processingType string, ratePerGB decimal.Decimal) types.CostUnit {
	return price(
		"data_processed",
		fmt.Sprintf("Data processed (%s)", processingType),
		MeasureGB,
		gb,
		ratePerGB,
		describe(gb, MeasureGB, ratePerGB),
	)
}

// HourlyCharge prices units (AZs, ports) billed per hour over hours
func HourlyCharge(name, label string, units, hours int64, hourlyRate decimal.Decimal) types.CostUnit {
	unitHours := decimal.NewFromInt(units).Mul(decimal.NewFromInt(hours))
	return price(
		name,
		label,
		MeasureHours,
		unitHours,
		hourlyRate,
		fmt.Sprintf("%d × %d hours × %s/hour", units, hours, hourlyRate.String()),
	)
}
