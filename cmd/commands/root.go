package commands

// Root command for Cobra CLI
// Registers the monitor and restarter subcommands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sui-arb-ops",
	Short: "Operational tools for the Sui arbitrage bot",
	Long: `sui-arb-ops bundles the operational helpers that run next to the Sui arbitrage bot:
a profit monitor that alerts Telegram on large balance increases, and a restarter
that periodically relaunches the bot inside a tmux session.`,
	Version:      "1.0.0",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(restarterCmd)
}
