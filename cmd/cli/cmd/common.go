package cmd

import (
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aws-cost-calc/core/input"
	"aws-cost-calc/core/output"
	"aws-cost-calc/core/types"
	"aws-cost-calc/core/ui"
	"aws-cost-calc/internal/config"
	"aws-cost-calc/internal/errors"
	"aws-cost-calc/internal/logging"
)

// outputFlags are shared by every calculator command
type outputFlags struct {
	format string
	output string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format (cli, json, csv, markdown, xlsx); default from config")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the report to a file instead of stdout")
}

// render writes report in the requested format to --output or stdout
func (o *outputFlags) render(cmd *cobra.Command, report *output.Report) error {
	cfg := config.Get()

	name := o.format
	if name == "" {
		name = cfg.Output.DefaultFormat
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if o.output != "" {
		file, err := os.Create(o.output)
		if err != nil {
			return errors.Output("creating output file", err).WithContext("path", o.output)
		}
		defer file.Close()
		w = file
	} else if format == output.FormatXLSX {
		return errors.Newf(errors.TypeInput, "xlsx output needs --output")
	}

	report.WithVersion(Version)
	if err := output.DefaultRegistry(cfg.Output.NoColor).Render(w, format, report); err != nil {
		return err
	}

	if o.output != "" {
		logging.Debug("report written", zap.String("path", o.output), zap.String("format", string(format)))
		ui.NewWriter(cmd.ErrOrStderr(), cfg.Output.NoColor).Success("Report written to %s", o.output)
	}
	return nil
}

// envelope records where the parameters came from and hashes them
func envelope(calc types.Calculator, paramsFile string, params interface{}) (*input.Envelope, error) {
	source := input.SourceInfo{Type: input.SourceCLI}
	if paramsFile != "" {
		source = input.SourceInfo{Type: input.SourceFile, Path: paramsFile}
	}
	return input.NewEnvelope(source, calc, params)
}

// flagOverlay applies only the flags the user actually set
type flagOverlay struct {
	cmd *cobra.Command
	n   input.Numbers
}

func newFlagOverlay(cmd *cobra.Command) *flagOverlay {
	return &flagOverlay{cmd: cmd}
}

func (o *flagOverlay) setDecimal(name string, dst *decimal.Decimal, v float64) {
	if o.cmd.Flags().Changed(name) {
		*dst = o.n.Decimal("--"+name, v)
	}
}

func (o *flagOverlay) setCount(name string, dst *int64, v int64) {
	if o.cmd.Flags().Changed(name) {
		*dst = v
	}
}

// err reports flags whose value was NaN or infinite
func (o *flagOverlay) err() error {
	return o.n.Err()
}
