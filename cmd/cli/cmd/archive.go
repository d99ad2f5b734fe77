// Package cmd - archive command
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aws-cost-calc/core/input"
	"aws-cost-calc/core/output"
	"aws-cost-calc/core/projection"
	"aws-cost-calc/core/types"
	"aws-cost-calc/core/ui"
	"aws-cost-calc/core/validation"
	"aws-cost-calc/internal/config"
	"aws-cost-calc/internal/logging"
)

var archiveOpts struct {
	outputFlags

	preset     string
	paramsFile string
	progress   bool

	periods     int
	initialGB   float64
	growthGB    float64
	puts        int64
	gets        int64
	deletes     int64
	transitions int64
	standardGB  float64
	bulkGB      float64

	storageRate    float64
	putRate        float64
	getRate        float64
	deleteRate     float64
	transitionRate float64
	standardRate   float64
	bulkRate       float64
}

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Project archive storage costs period by period",
	Long: `Project the cost of an archive storage bucket over a number of periods.

Storage grows by a fixed amount after each period; request and recovery
charges repeat unchanged every period. Parameters are resolved in order:
preset, then --params file, then individual flags.

Examples:
  aws-cost-calc archive --periods 12 --initial-gb 1000 --growth-gb 100
  aws-cost-calc archive --preset zero --periods 36 --initial-gb 5000
  aws-cost-calc archive --params archive.yaml --format csv --output archive.csv`,
	Args: cobra.NoArgs,
	RunE: runArchive,
}

func init() {
	f := archiveCmd.Flags()
	archiveOpts.register(archiveCmd)

	f.StringVar(&archiveOpts.preset, "preset", input.PresetDefault, "starting values (default, zero)")
	f.StringVarP(&archiveOpts.paramsFile, "params", "p", "", "parameter file (.json, .yaml, .hcl)")
	f.BoolVar(&archiveOpts.progress, "progress", false, "show a progress bar on stderr")

	f.IntVarP(&archiveOpts.periods, "periods", "m", 0, "number of periods (months) to project")
	f.Float64Var(&archiveOpts.initialGB, "initial-gb", 0, "GB stored in the first period")
	f.Float64Var(&archiveOpts.growthGB, "growth-gb", 0, "GB added after each period")
	f.Int64Var(&archiveOpts.puts, "puts", 0, "PUT/COPY/POST/LIST requests per period")
	f.Int64Var(&archiveOpts.gets, "gets", 0, "GET/SELECT requests per period")
	f.Int64Var(&archiveOpts.deletes, "deletes", 0, "DELETE requests per period (never billed)")
	f.Int64Var(&archiveOpts.transitions, "transitions", 0, "lifecycle transition requests per period")
	f.Float64Var(&archiveOpts.standardGB, "standard-gb", 0, "GB restored with standard recovery per period")
	f.Float64Var(&archiveOpts.bulkGB, "bulk-gb", 0, "GB restored with bulk recovery per period")

	f.Float64Var(&archiveOpts.storageRate, "storage-rate", 0, "price per GB per period")
	f.Float64Var(&archiveOpts.putRate, "put-rate", 0, "price per 1,000 PUT requests")
	f.Float64Var(&archiveOpts.getRate, "get-rate", 0, "price per 1,000 GET requests")
	f.Float64Var(&archiveOpts.deleteRate, "delete-rate", 0, "price per 1,000 DELETE requests (recorded, never billed)")
	f.Float64Var(&archiveOpts.transitionRate, "transition-rate", 0, "price per 1,000 transition requests")
	f.Float64Var(&archiveOpts.standardRate, "standard-rate", 0, "price per GB of standard recovery")
	f.Float64Var(&archiveOpts.bulkRate, "bulk-rate", 0, "price per GB of bulk recovery")
}

// archiveParams resolves preset, parameter file and flags, in that order
func archiveParams(cmd *cobra.Command) (projection.Params, error) {
	o := &archiveOpts

	p, err := input.ArchivePreset(o.preset, config.Get())
	if err != nil {
		return p, err
	}
	if o.paramsFile != "" {
		if p, err = input.LoadArchive(o.paramsFile, p); err != nil {
			return p, err
		}
	}

	ov := newFlagOverlay(cmd)
	if cmd.Flags().Changed("periods") {
		p.Periods = o.periods
	}
	ov.setDecimal("initial-gb", &p.InitialStorage, o.initialGB)
	ov.setDecimal("growth-gb", &p.PeriodGrowth, o.growthGB)
	ov.setCount("puts", &p.Operations.Write, o.puts)
	ov.setCount("gets", &p.Operations.Read, o.gets)
	ov.setCount("deletes", &p.Operations.Delete, o.deletes)
	ov.setCount("transitions", &p.Operations.Transition, o.transitions)
	ov.setDecimal("standard-gb", &p.Recovery.Standard, o.standardGB)
	ov.setDecimal("bulk-gb", &p.Recovery.Bulk, o.bulkGB)

	ov.setDecimal("storage-rate", &p.Rates.Storage, o.storageRate)
	ov.setDecimal("put-rate", &p.Rates.Write, o.putRate)
	ov.setDecimal("get-rate", &p.Rates.Read, o.getRate)
	ov.setDecimal("delete-rate", &p.Rates.Delete, o.deleteRate)
	ov.setDecimal("transition-rate", &p.Rates.Transition, o.transitionRate)
	ov.setDecimal("standard-rate", &p.Rates.StandardRecovery, o.standardRate)
	ov.setDecimal("bulk-rate", &p.Rates.BulkRecovery, o.bulkRate)

	return p, ov.err()
}

func runArchive(cmd *cobra.Command, args []string) error {
	params, err := archiveParams(cmd)
	if err != nil {
		return err
	}
	if err := validation.Archive(params); err != nil {
		return err
	}

	env, err := envelope(types.CalculatorArchive, archiveOpts.paramsFile, params)
	if err != nil {
		return err
	}
	logging.Debug("starting archive projection",
		zap.String("request_id", env.Metadata.RequestID),
		zap.Int("periods", params.Periods),
	)

	uw := ui.NewWriter(cmd.ErrOrStderr(), config.Get().Output.NoColor)
	if verbose {
		uw.SetVerbosity(2)
	}
	if !params.Rates.Delete.IsZero() {
		uw.Warning("DELETE requests are never billed; delete rate %s is ignored", params.Rates.Delete)
	}
	run, err := ui.NewProjectionRunner(uw, archiveOpts.progress).Run(cmd.Context(), params)
	if err != nil {
		return err
	}
	logging.Debug("archive projection finished",
		zap.String("request_id", env.Metadata.RequestID),
		zap.Duration("duration", run.Duration),
		zap.String("total", run.Summary.TotalCost.String()),
	)

	report := output.ArchiveReport(params, run.Records, run.Summary).WithEnvelope(env)
	return archiveOpts.render(cmd, report)
}
