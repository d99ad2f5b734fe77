// Package cmd - endpoint command
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

var endpointOpts struct {
	outputFlags

	paramsFile string

	hourlyRate  float64
	azCount     int64
	hours       int64
	ratePerGB   float64
	processedGB float64
}

// endpointCmd represents the endpoint command
var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Estimate the monthly cost of a private network endpoint",
	Long: `Estimate a private network endpoint: an hourly charge for every
availability zone it is deployed in, plus a per-GB data processing charge.

Examples:
  aws-cost-calc endpoint
  aws-cost-calc endpoint --az-count 3 --processed-gb 2500
  aws-cost-calc endpoint --hourly-rate 0.013 --hours 720 --format json`,
	Args: cobra.NoArgs,
	RunE: runEndpoint,
}

func init() {
	f := endpointCmd.Flags()
	endpointOpts.register(endpointCmd)

	f.StringVarP(&endpointOpts.paramsFile, "params", "p", "", "parameter file (.json, .yaml, .hcl)")
	f.Float64Var(&endpointOpts.hourlyRate, "hourly-rate", 0, "price per AZ per hour")
	f.Int64Var(&endpointOpts.azCount, "az-count", 0, "number of availability zones")
	f.Int64Var(&endpointOpts.hours, "hours", 0, "hours in the month")
	f.Float64Var(&endpointOpts.ratePerGB, "rate-per-gb", 0, "price per GB processed")
	f.Float64Var(&endpointOpts.processedGB, "processed-gb", 0, "GB processed in the month")
}

func endpointParams(cmd *cobra.Command) (calculators.EndpointParams, error) {
	o := &endpointOpts
	cfg := config.Get()

	p, err := input.Endpoint(cfg.Endpoint, cfg.Currency)
	if err != nil {
		return p, err
	}
	if o.paramsFile != "" {
		if p, err = input.LoadEndpoint(o.paramsFile, p); err != nil {
			return p, err
		}
	}

	ov := newFlagOverlay(cmd)
	ov.setDecimal("hourly-rate", &p.HourlyRatePerAZ, o.hourlyRate)
	ov.setCount("az-count", &p.AZCount, o.azCount)
	ov.setCount("hours", &p.Hours, o.hours)
	ov.setDecimal("rate-per-gb", &p.RatePerGB, o.ratePerGB)
	ov.setDecimal("processed-gb", &p.ProcessedGB, o.processedGB)
	return p, ov.err()
}

func runEndpoint(cmd *cobra.Command, args []string) error {
	params, err := endpointParams(cmd)
	if err != nil {
		return err
	}
	if err := validation.Endpoint(params); err != nil {
		return err
	}

	env, err := envelope(types.CalculatorEndpoint, endpointOpts.paramsFile, params)
	if err != nil {
		return err
	}

	est := calculators.EstimateEndpoint(params)
	return endpointOpts.render(cmd, output.EndpointReport(params, est).WithEnvelope(env))
}
