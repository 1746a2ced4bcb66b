package bots_monitor

import (
	"context"
	"time"

	"sui-arb-ops/internal/features/restarter"
	"sui-arb-ops/internal/infra/config"
	"sui-arb-ops/internal/infra/exec"
	log "sui-arb-ops/internal/infra/log"
	"sui-arb-ops/internal/infra/tmux"

	"go.uber.org/zap"
)

// RunBotRestarter blocks until ctx is cancelled
func RunBotRestarter(ctx context.Context, cfg *config.Config) error {
	rc := cfg.Restarter

	schedule, err := restarter.ParseSchedule(rc.Schedule)
	if err != nil {
		log.LogError("Invalid restart schedule", zap.String("schedule", rc.Schedule), zap.Error(err))
		return err
	}

	if err := exec.ValidateInstalled(rc.TmuxBin); err != nil {
		log.LogError("tmux is not available", zap.Error(err))
		return err
	}

	runner := exec.NewRunner(time.Duration(rc.CommandTimeout) * time.Second)
	session := tmux.NewSession(runner, rc.TmuxBin, rc.Session, rc.WorkDir)

	command := restarter.BotCommand{
		PrivateKey:     rc.PrivateKey,
		RecordPoolIDs:  rc.RecordPoolIDs,
		UseDBSimulator: rc.UseDBSimulator,
		MaxRecentArbs:  rc.MaxRecentArbs,
		Workers:        rc.Workers,
		NumSimulators:  rc.NumSimulators,
		PreloadPath:    rc.PreloadPath,
	}

	return restarter.New(session, command, schedule).Run(ctx)
}
