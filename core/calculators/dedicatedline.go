package calculators

import (
	"fmt"

	"github.com/shopspring/decimal"

	"aws-cost-calc/core/pricing/primitives"
	"aws-cost-calc/core/types"
)

// MaxHoursPerMonth is the longest billing month (31 days)
const MaxHoursPerMonth = 744

// Upper bounds accepted at the boundary; their product stays far inside int64
const (
	MaxLocations        = 10000
	MaxPortsPerLocation = 10000
)

// DedicatedLineParams are the inputs of a dedicated-line estimate
type DedicatedLineParams struct {
	Locations        int64    `json:"locations" validate:"min=1,max=10000"`
	PortsPerLocation int64    `json:"ports_per_location" validate:"min=1,max=10000"`
	PortType         PortType `json:"port_type" validate:"oneof=dedicated hosted"`
	Capacity         string   `json:"capacity" validate:"required"`
	Hours            int64    `json:"hours" validate:"min=1,max=744"`

	TransferOutGB     decimal.Decimal `json:"transfer_out_gb" validate:"nonneg"`
	TransferRatePerGB decimal.Decimal `json:"transfer_rate_per_gb" validate:"nonneg"`

	Currency types.Currency `json:"currency,omitempty"`
}

// DedicatedLineEstimate is the monthly cost of a dedicated line
type DedicatedLineEstimate struct {
	TotalPorts     int64           `json:"total_ports"`
	HourlyPortRate decimal.Decimal `json:"hourly_port_rate"`

	PortCharges     decimal.Decimal `json:"port_charges"`
	TransferCharges decimal.Decimal `json:"transfer_charges"`
	Total           decimal.Decimal `json:"total"`

	Breakdown *types.CostBreakdown `json:"breakdown"`
}

// EstimateDedicatedLine prices port hours and data transfer out for one month.
// It fails only when the port type and capacity are not in the price table.
func EstimateDedicatedLine(p DedicatedLineParams) (DedicatedLineEstimate, error) {
	rate, err := PortRate(p.PortType, p.Capacity)
	if err != nil {
		return DedicatedLineEstimate{}, err
	}

	totalPorts := p.Locations * p.PortsPerLocation
	ports := primitives.HourlyCharge(
		"port_hours",
		fmt.Sprintf("%s port hours (%s)", p.PortType, p.Capacity),
		totalPorts,
		p.Hours,
		rate,
	)
	transfer := primitives.DataTransferGB(p.TransferOutGB, primitives.TransferOutbound, p.TransferRatePerGB)

	b := types.NewCostBreakdown(p.Currency)
	b.Add(ports)
	b.Add(transfer)

	return DedicatedLineEstimate{
		TotalPorts:      totalPorts,
		HourlyPortRate:  rate,
		PortCharges:     ports.Amount,
		TransferCharges: transfer.Amount,
		Total:           b.Total,
		Breakdown:       b,
	}, nil
}
