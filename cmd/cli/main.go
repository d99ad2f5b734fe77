// Package main is the entry point for the aws-cost-calc CLI.
package main

import (
	"os"

	"aws-cost-calc/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
