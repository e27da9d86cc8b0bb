// Package main is the entry point for the run API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "run-api",
	Short: "Roguelike run-state API server",
	Long:  `run-api is the authoritative server for roguelike card-battler runs: map traversal, combat sessions, and save persistence.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
