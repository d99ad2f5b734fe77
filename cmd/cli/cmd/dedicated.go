// Package cmd - dedicated-line command
package cmd

import (
	"github.com/spf13/cobra"

	"aws-cost-calc/core/calculators"
	"aws-cost-calc/core/input"
	"aws-cost-calc/core/output"
	"aws-cost-calc/core/types"
	"aws-cost-calc/core/validation"
	"aws-cost-calc/internal/config"
)

var dedicatedLineOpts struct {
	outputFlags

	paramsFile     string
	listCapacities bool

	locations        int64
	portsPerLocation int64
	portType         string
	capacity         string
	hours            int64
	transferOutGB    float64
	transferRate     float64
}

// dedicatedLineCmd represents the dedicated-line command
var dedicatedLineCmd = &cobra.Command{
	Use:     "dedicated-line",
	Aliases: []string{"direct-connect", "dx"},
	Short:   "Estimate the monthly cost of a dedicated network line",
	Long: `Estimate a dedicated network line: port hours for every port at every
location, priced by port type and capacity, plus data transfer out.

Examples:
  aws-cost-calc dedicated-line --list-capacities
  aws-cost-calc dedicated-line --locations 2 --ports-per-location 2 --capacity "10 Gbps"
  aws-cost-calc dedicated-line --port-type hosted --capacity "500 Mbps" --transfer-out-gb 1000`,
	Args: cobra.NoArgs,
	RunE: runDedicatedLine,
}

func init() {
	f := dedicatedLineCmd.Flags()
	dedicatedLineOpts.register(dedicatedLineCmd)

	f.StringVarP(&dedicatedLineOpts.paramsFile, "params", "p", "", "parameter file (.json, .yaml, .hcl)")
	f.BoolVar(&dedicatedLineOpts.listCapacities, "list-capacities", false, "list port capacities and hourly prices")

	f.Int64Var(&dedicatedLineOpts.locations, "locations", 0, "number of locations")
	f.Int64Var(&dedicatedLineOpts.portsPerLocation, "ports-per-location", 0, "ports at each location")
	f.StringVar(&dedicatedLineOpts.portType, "port-type", "", "port type (dedicated, hosted)")
	f.StringVar(&dedicatedLineOpts.capacity, "capacity", "", `port capacity, e.g. "1 Gbps"`)
	f.Int64Var(&dedicatedLineOpts.hours, "hours", 0, "port hours in the month (1-744)")
	f.Float64Var(&dedicatedLineOpts.transferOutGB, "transfer-out-gb", 0, "GB transferred out in the month")
	f.Float64Var(&dedicatedLineOpts.transferRate, "transfer-rate", 0, "price per GB transferred out")
}

func dedicatedLineParams(cmd *cobra.Command) (calculators.DedicatedLineParams, error) {
	o := &dedicatedLineOpts
	cfg := config.Get()

	p, err := input.DedicatedLine(cfg.DedicatedLine, cfg.Currency)
	if err != nil {
		return p, err
	}
	if o.paramsFile != "" {
		if p, err = input.LoadDedicatedLine(o.paramsFile, p); err != nil {
			return p, err
		}
	}

	ov := newFlagOverlay(cmd)
	ov.setCount("locations", &p.Locations, o.locations)
	ov.setCount("ports-per-location", &p.PortsPerLocation, o.portsPerLocation)
	if cmd.Flags().Changed("port-type") {
		pt, err := calculators.ParsePortType(o.portType)
		if err != nil {
			return p, err
		}
		p.PortType = pt
	}
	if cmd.Flags().Changed("capacity") {
		p.Capacity = o.capacity
	}
	ov.setCount("hours", &p.Hours, o.hours)
	ov.setDecimal("transfer-out-gb", &p.TransferOutGB, o.transferOutGB)
	ov.setDecimal("transfer-rate", &p.TransferRatePerGB, o.transferRate)
	return p, ov.err()
}

func runDedicatedLine(cmd *cobra.Command, args []string) error {
	if dedicatedLineOpts.listCapacities {
		return dedicatedLineOpts.render(cmd, output.CapacitiesReport(config.Get().Currency))
	}

	params, err := dedicatedLineParams(cmd)
	if err != nil {
		return err
	}
	if err := validation.DedicatedLine(params); err != nil {
		return err
	}

	env, err := envelope(types.CalculatorDedicatedLine, dedicatedLineOpts.paramsFile, params)
	if err != nil {
		return err
	}

	est, err := calculators.EstimateDedicatedLine(params)
	if err != nil {
		return err
	}
	return dedicatedLineOpts.render(cmd, output.DedicatedLineReport(params, est).WithEnvelope(env))
}
