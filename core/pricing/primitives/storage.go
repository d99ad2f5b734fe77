// Package primitives - Storage pricing primitives
// GB-months and retrievals
package primitives

import (
	"github.com/shopspring/decimal"

	"aws-cost-calc/core/types"
)

// StorageClass for archive storage classification
type StorageClass string

const (
	StorageDeepArchive StorageClass = "deep_archive"
)

// StorageGBMonth prices gb of storage held for one period
func StorageGBMonth(gb decimal.Decimal, class StorageClass, ratePerGBMonth decimal.Decimal) types.CostUnit {
	return price(
		"storage",
		"Storage ("+string(class)+")",
		MeasureGBMonth,
		gb,
		ratePerGBMonth,
		describe(gb, MeasureGBMonth, ratePerGBMonth),
	)
}

// RecoveryTier is a retrieval service level
type RecoveryTier string

const (
	// RecoveryStandard is the faster, costlier tier
	RecoveryStandard RecoveryTier = "standard"

	// RecoveryBulk is the slower, cheaper tier
	RecoveryBulk RecoveryTier = "bulk"
)

// RetrievalGB prices gb restored from archive at the given tier
func RetrievalGB(gb decimal.Decimal, tier RecoveryTier, ratePerGB decimal.Decimal) types.CostUnit {
	return price(
		string(tier)+"_recovery",
		"Recovery ("+string(tier)+")",
		MeasureGB,
		gb,
		ratePerGB,
		describe(gb, MeasureGB, ratePerGB),
	)
}
