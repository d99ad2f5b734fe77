package calculators

import (
	"strings"

	"github.com/shopspring/decimal"

	"aws-cost-calc/internal/errors"
)

// PortType distinguishes dedicated from hosted connections
type PortType string

const (
	PortDedicated PortType = "dedicated"
	PortHosted    PortType = "hosted"
)

// ParsePortType accepts the type case-insensitively
func ParsePortType(s string) (PortType, error) {
	switch PortType(strings.ToLower(strings.TrimSpace(s))) {
	case PortDedicated:
		return PortDedicated, nil
	case PortHosted:
		return PortHosted, nil
	default:
		return "", errors.NotFound("port type", s)
	}
}

// PortPrice is the hourly price of one port of a given capacity
type PortPrice struct {
	Capacity   string          `json:"capacity"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// Hourly port prices, in display order
var portPricing = map[PortType][]PortPrice{
	PortDedicated: {
		{"1 Gbps", decimal.RequireFromString("0.30")},
		{"10 Gbps", decimal.RequireFromString("2.25")},
		{"100 Gbps", decimal.RequireFromString("22.50")},
		{"400 Gbps", decimal.RequireFromString("85.00")},
	},
	PortHosted: {
		{"50 Mbps", decimal.RequireFromString("0.03")},
		{"100 Mbps", decimal.RequireFromString("0.06")},
		{"200 Mbps", decimal.RequireFromString("0.08")},
		{"300 Mbps", decimal.RequireFromString("0.12")},
		{"400 Mbps", decimal.RequireFromString("0.16")},
		{"500 Mbps", decimal.RequireFromString("0.20")},
		{"1 Gbps", decimal.RequireFromString("0.33")},
		{"2 Gbps", decimal.RequireFromString("0.66")},
		{"5 Gbps", decimal.RequireFromString("1.65")},
		{"10 Gbps", decimal.RequireFromString("2.48")},
		{"25 Gbps", decimal.RequireFromString("6.20")},
	},
}

// PortTypes lists the known port types
func PortTypes() []PortType {
	return []PortType{PortDedicated, PortHosted}
}

// Capacities lists the capacities offered for a port type, in display order
func Capacities(portType PortType) []PortPrice {
	prices := portPricing[portType]
	out := make([]PortPrice, len(prices))
	copy(out, prices)
	return out
}

// PortRate looks up the hourly rate of one port.
// Capacity matching ignores case and spacing, so "10gbps" finds "10 Gbps".
func PortRate(portType PortType, capacity string) (decimal.Decimal, error) {
	prices, ok := portPricing[portType]
	if !ok {
		return decimal.Zero, errors.NotFound("port type", string(portType))
	}

	want := normalizeCapacity(capacity)
	for _, p := range prices {
		if normalizeCapacity(p.Capacity) == want {
			return p.HourlyRate, nil
		}
	}
	return decimal.Zero, errors.NotFound("port capacity", capacity).WithContext("port_type", string(portType))
}

func normalizeCapacity(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}
