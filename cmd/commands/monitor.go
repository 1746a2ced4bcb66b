package commands

// Command to run the large-profit monitor
// Polls the profit address balance and posts to Telegram on large increases
// Implements graceful shutdown for proper termination

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sui-arb-ops/bots_monitor"
	"sui-arb-ops/internal/infra/config"
	logging "sui-arb-ops/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch the profit address and alert on large balance increases",
	Long:  `Poll suix_getBalance for the profit address and send a Telegram message with the latest incoming transaction whenever the balance grows by at least the configured threshold.`,
	RunE:  runMonitor,
}

func init() {
	config.MonitorFlags(monitorCmd.Flags())
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Setup(cfg.Monitor.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logging.Sync()

	if err := config.ValidateMonitor(cfg); err != nil {
		logging.LogError("Invalid config", zap.Error(err))
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runUntilSignal(ctx, "Profit monitor", func(ctx context.Context) error {
		return bots_monitor.RunProfitMonitor(ctx, cfg)
	})
}

// runUntilSignal runs fn and waits for it to return after ctx is cancelled
func runUntilSignal(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.LogError(name+" stopped with error", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	logging.LogInfo("Shutdown signal received, gracefully stopping...")

	select {
	case err := <-errCh:
		logging.LogSuccess(name + " stopped gracefully")
		return err
	case <-time.After(10 * time.Second):
		logging.LogWarn("Timeout waiting for " + name + " to stop")
		return nil
	}
}
