package bots_monitor

// Wires the large-profit monitor: Sui RPC client, Telegram notifier, state file and journal

import (
	"context"
	"fmt"

	"sui-arb-ops/internal/clients_api/sui"
	"sui-arb-ops/internal/clients_api/telegram"
	"sui-arb-ops/internal/features/profit"
	"sui-arb-ops/internal/infra/config"
	"sui-arb-ops/internal/infra/db"
	log "sui-arb-ops/internal/infra/log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RunProfitMonitor blocks until ctx is cancelled
func RunProfitMonitor(ctx context.Context, cfg *config.Config) error {
	notifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.ThreadID)
	if err != nil {
		log.LogError("Failed to initialize Telegram bot", zap.Error(err))
		return err
	}

	journal, err := openJournal(cfg.Monitor.JournalPath)
	if err != nil {
		return err
	}
	defer journal.Close()

	client := sui.NewClient(cfg.Sui.RPCURL, sui.Options{
		Timeout:         cfg.Sui.Timeout(),
		RateLimit:       cfg.Sui.RateLimit,
		MaxRetries:      cfg.Sui.MaxRetries,
		MaxResponseSize: cfg.Sui.MaxResponseSize,
	})

	monitor := profit.NewMonitor(profit.Config{
		Address:       cfg.Monitor.ProfitAddress,
		CoinType:      cfg.Monitor.CoinType,
		Threshold:     decimal.NewFromInt(cfg.Monitor.ThresholdMist),
		PollInterval:  cfg.Monitor.PollEvery(),
		ExplorerTxURL: cfg.Monitor.ExplorerTxURL,
		StateFile:     cfg.Monitor.StateFile,
	}, client, notifier, journal)

	if err := monitor.LoadState(); err != nil {
		log.LogWarn("Failed to load monitor state, starting without baseline", zap.Error(err))
	}

	return monitor.Run(ctx)
}

func openJournal(path string) (db.Journal, error) {
	if path == "" {
		return db.NoopJournal{}, nil
	}
	journal, err := db.OpenSQLiteJournal(path)
	if err != nil {
		log.LogError("Failed to open profit journal", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to open profit journal: %w", err)
	}
	log.LogInfo("Profit journal opened", zap.String("path", path))

	if last, err := journal.Recent(1); err != nil {
		log.LogWarn("Failed to read last profit event", zap.Error(err))
	} else if len(last) > 0 {
		log.LogInfo("Last recorded profit",
			zap.Time("observedAt", last[0].ObservedAt),
			zap.String("profit", last[0].Profit),
			zap.String("digest", last[0].TxDigest))
	}
	return journal, nil
}
