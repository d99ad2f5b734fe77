package input

import (
	"github.com/shopspring/decimal"

	"aws-cost-calc/core/calculators"
	"aws-cost-calc/core/projection"
	"aws-cost-calc/core/types"
	"aws-cost-calc/internal/config"
	"aws-cost-calc/internal/errors"
)

// Archive builds projection parameters from configured defaults.
// Configured values come from a file or the environment, so every float is checked.
func Archive(cfg config.ArchiveConfig, currency types.Currency) (projection.Params, error) {
	var n Numbers
	p := projection.Params{
		Periods:        cfg.Periods,
		InitialStorage: n.Decimal("archive.initial_gb", cfg.InitialGB),
		PeriodGrowth:   n.Decimal("archive.growth_gb", cfg.GrowthGB),
		Operations: projection.OperationCounts{
			Write:      cfg.Puts,
			Read:       cfg.Gets,
			Delete:     cfg.Deletes,
			Transition: cfg.Transitions,
		},
		Recovery: projection.RecoveryVolumes{
			Standard: n.Decimal("archive.standard_recovery_gb", cfg.StandardRecoveryGB),
			Bulk:     n.Decimal("archive.bulk_recovery_gb", cfg.BulkRecoveryGB),
		},
		Rates:    archiveRates(&n, cfg.Rates),
		Currency: currency,
	}
	return p, n.Err()
}

func archiveRates(n *Numbers, r config.ArchiveRates) projection.UnitRates {
	return projection.UnitRates{
		Storage:          n.Decimal("archive.rates.storage_gb_month", r.StorageGBMonth),
		Write:            n.Decimal("archive.rates.put_per_1k", r.PutPer1K),
		Read:             n.Decimal("archive.rates.get_per_1k", r.GetPer1K),
		Delete:           n.Decimal("archive.rates.delete_per_1k", r.DeletePer1K),
		Transition:       n.Decimal("archive.rates.transition_per_1k", r.TransitionPer1K),
		StandardRecovery: n.Decimal("archive.rates.standard_recovery_per_gb", r.StandardRecoveryPerGB),
		BulkRecovery:     n.Decimal("archive.rates.bulk_recovery_per_gb", r.BulkRecoveryPerGB),
	}
}

// DefaultArchive is the archive preset built from the shipped defaults
func DefaultArchive() projection.Params {
	d := config.Default()
	p, err := Archive(d.Archive, d.Currency)
	if err != nil {
		panic(err) // shipped defaults are constants
	}
	return p
}

// Reset zeroes every count, volume and the growth of p, keeping the period
// count and initial storage. Rates go back to the shipped defaults.
func Reset(p projection.Params) projection.Params {
	return projection.Params{
		Periods:        p.Periods,
		InitialStorage: p.InitialStorage,
		PeriodGrowth:   decimal.Zero,
		Recovery: projection.RecoveryVolumes{
			Standard: decimal.Zero,
			Bulk:     decimal.Zero,
		},
		Rates:    DefaultArchive().Rates,
		Currency: p.Currency,
	}
}

// ZeroArchive is the default preset after Reset
func ZeroArchive() projection.Params {
	return Reset(DefaultArchive())
}

// Preset names accepted by ArchivePreset
const (
	PresetDefault = "default"
	PresetZero    = "zero"
)

// ArchivePreset resolves a preset name against configured defaults
func ArchivePreset(name string, cfg *config.Config) (projection.Params, error) {
	base, err := Archive(cfg.Archive, cfg.Currency)
	if err != nil {
		return base, err
	}
	switch name {
	case "", PresetDefault:
		return base, nil
	case PresetZero:
		// configured rates are this deployment's defaults
		zero := Reset(base)
		zero.Rates = base.Rates
		return zero, nil
	default:
		return projection.Params{}, errors.NotFound("preset", name)
	}
}

// Endpoint builds endpoint parameters from configured defaults
func Endpoint(cfg config.EndpointConfig, currency types.Currency) (calculators.EndpointParams, error) {
	var n Numbers
	p := calculators.EndpointParams{
		HourlyRatePerAZ: n.Decimal("endpoint.hourly_rate_per_az", cfg.HourlyRatePerAZ),
		AZCount:         int64(cfg.AZCount),
		Hours:           int64(cfg.Hours),
		RatePerGB:       n.Decimal("endpoint.rate_per_gb", cfg.RatePerGB),
		ProcessedGB:     n.Decimal("endpoint.processed_gb", cfg.ProcessedGB),
		Currency:        currency,
	}
	return p, n.Err()
}

// DedicatedLine builds dedicated-line parameters from configured defaults
func DedicatedLine(cfg config.DedicatedLineConfig, currency types.Currency) (calculators.DedicatedLineParams, error) {
	var n Numbers
	p := calculators.DedicatedLineParams{
		Locations:         int64(cfg.Locations),
		PortsPerLocation:  int64(cfg.PortsPerLocation),
		PortType:          calculators.PortType(cfg.PortType),
		Capacity:          cfg.Capacity,
		Hours:             int64(cfg.Hours),
		TransferOutGB:     n.Decimal("dedicated_line.transfer_out_gb", cfg.TransferOutGB),
		TransferRatePerGB: n.Decimal("dedicated_line.transfer_rate_per_gb", cfg.TransferRatePerGB),
		Currency:          currency,
	}
	return p, n.Err()
}
