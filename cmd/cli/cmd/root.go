// Package cmd provides the CLI commands for aws-cost-calc.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aws-cost-calc/core/ui"
	"aws-cost-calc/internal/config"
	"aws-cost-calc/internal/errors"
	"aws-cost-calc/internal/logging"
)

// Version is overridden at build time with -ldflags "-X aws-cost-calc/cmd/cli/cmd.Version=..."
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aws-cost-calc",
	Short: "Estimate AWS archive storage, endpoint and dedicated line costs",
	Long: `aws-cost-calc projects archive storage costs period by period and prices
private network endpoints and dedicated network lines.

Every rate can be overridden from flags, a parameter file or the config file.

Examples:
  aws-cost-calc archive --periods 12 --initial-gb 1000 --growth-gb 100
  aws-cost-calc archive --params archive.hcl --format xlsx --output archive.xlsx
  aws-cost-calc endpoint --az-count 3 --processed-gb 2500
  aws-cost-calc dedicated-line --port-type hosted --capacity "500 Mbps"
  aws-cost-calc serve --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(ui.NewWriter(rootCmd.ErrOrStderr(), config.Get().Output.NoColor), err)
	}
	return err
}

// printError shows err with one line per rejected parameter
func printError(w *ui.Writer, err error) {
	e, ok := errors.As(err)
	if !ok || len(e.Fields) == 0 {
		w.Error("%v", err)
		return
	}
	w.Error("%s", e.Message)
	for _, f := range e.Fields {
		w.Println("  %s: %s", f.Field, f.Reason)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aws-cost-calc.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(endpointCmd)
	rootCmd.AddCommand(dedicatedLineCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if noColor {
		cfg.Output.NoColor = true
	}
	config.Set(cfg)

	// Initialize logging
	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aws-cost-calc version %s\n", Version)
	},
}
