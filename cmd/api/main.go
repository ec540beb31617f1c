package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentcal/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agentcal",
		Short: "AgentCalendar API Server",
		Long:  `AgentCalendar is a personal calendar and scheduling service: an hourly planning grid with per-day events, week/month/year views and derived productivity statistics.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
