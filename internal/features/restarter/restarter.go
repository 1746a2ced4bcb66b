package restarter

import (
	"context"
	"fmt"
	"time"

	log "sui-arb-ops/internal/infra/log"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Session is the terminal multiplexer session hosting the bot
type Session interface {
	Name() string
	Kill(ctx context.Context) error
	Create(ctx context.Context) error
	SendKeys(ctx context.Context, line string) error
	Exists(ctx context.Context) bool
}

// DefaultSchedule - restart every 3 hours
const DefaultSchedule = "@every 3h"

// ParseSchedule accepts a standard 5-field cron expression or a
// descriptor such as "@every 3h" / "@daily".
func ParseSchedule(expr string) (cron.Schedule, error) {
	if expr == "" {
		expr = DefaultSchedule
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid restart schedule %q: %w", expr, err)
	}
	return sched, nil
}

// Restarter kills and relaunches the bot on a schedule
type Restarter struct {
	session  Session
	command  BotCommand
	schedule cron.Schedule
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

func New(session Session, command BotCommand, schedule cron.Schedule) *Restarter {
	return &Restarter{
		session:  session,
		command:  command,
		schedule: schedule,
		now:      time.Now,
		after:    time.After,
	}
}

// RestartOnce kills the session (if any), creates a fresh one and starts the bot in it
func (r *Restarter) RestartOnce(ctx context.Context) error {
	name := r.session.Name()

	if err := r.session.Kill(ctx); err != nil {
		log.LogWarn("No existing session to kill", zap.String("session", name), zap.Error(err))
	} else {
		log.LogSuccess(fmt.Sprintf("Killed existing tmux session `%s`", name))
	}

	if err := r.session.Create(ctx); err != nil {
		return fmt.Errorf("failed to execute tmux command: %w", err)
	}
	log.LogSuccess(fmt.Sprintf("Created new tmux session `%s`", name))
	if !r.session.Exists(ctx) {
		log.LogWarn("Session not reported by tmux after creation", zap.String("session", name))
	}

	if err := r.session.SendKeys(ctx, r.command.String()); err != nil {
		return fmt.Errorf("failed to execute tmux command: %w", err)
	}
	log.LogSuccess("Started bot successfully", zap.String("command", r.command.Redacted()))
	return nil
}

// NextRestart is the first scheduled time after now. With "@every d" this
// is now + d, truncated to the second.
func (r *Restarter) NextRestart(now time.Time) time.Time {
	return r.schedule.Next(now)
}

// Run restarts the bot, then sleeps until the next scheduled restart, until
// ctx is cancelled. Restart failures are logged and never stop the loop.
func (r *Restarter) Run(ctx context.Context) error {
	log.LogSuccess("Bot restarter script started", zap.String("session", r.session.Name()))

	for {
		if err := r.RestartOnce(ctx); err != nil {
			log.LogError("Restart failed", zap.Error(err))
		}

		now := r.now()
		next := r.NextRestart(now)
		log.LogSuccess(fmt.Sprintf("Next restart scheduled at: %s", next.Format("2006-01-02 15:04:05")))

		select {
		case <-ctx.Done():
			log.LogSuccess("Script terminated by user")
			return nil
		case <-r.after(next.Sub(now)):
		}
	}
}
