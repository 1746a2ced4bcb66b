package commands

// Command to run the bot restarter
// Kills and relaunches the arb bot inside a tmux session on a fixed schedule

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sui-arb-ops/bots_monitor"
	"sui-arb-ops/internal/infra/config"
	logging "sui-arb-ops/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var restarterCmd = &cobra.Command{
	Use:   "restarter",
	Short: "Periodically restart the arb bot inside tmux",
	Long:  `Kill the bot's tmux session, create it again and type the start-bot command into it, then repeat on the configured schedule (every 3 hours by default).`,
	RunE:  runRestarter,
}

func init() {
	config.RestarterFlags(restarterCmd.Flags())
}

func runRestarter(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Setup(cfg.Restarter.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logging.Sync()

	if err := config.ValidateRestarter(cfg); err != nil {
		logging.LogError("Invalid config", zap.Error(err))
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runUntilSignal(ctx, "Bot restarter", func(ctx context.Context) error {
		return bots_monitor.RunBotRestarter(ctx, cfg)
	})
}
