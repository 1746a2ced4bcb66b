package profit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sui-arb-ops/internal/clients_api/sui"
	"sui-arb-ops/internal/infra/db"
	"sui-arb-ops/internal/infra/fs"
	log "sui-arb-ops/internal/infra/log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Chain is the part of the Sui client the monitor needs
type Chain interface {
	GetBalance(ctx context.Context, owner, coinType string) (*sui.Balance, error)
	LatestIncomingDigest(ctx context.Context, address string) (string, error)
}

// Notifier delivers a formatted message
type Notifier interface {
	Notify(text string) error
}

type Config struct {
	Address       string
	CoinType      string
	Threshold     decimal.Decimal // MIST
	PollInterval  time.Duration
	ExplorerTxURL string
	StateFile     string // empty disables persistence
}

// state is what survives a restart
type state struct {
	Address   string    `json:"address"`
	CoinType  string    `json:"coinType,omitempty"`
	Balance   string    `json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Monitor polls the profit address and alerts on large increases
type Monitor struct {
	cfg      Config
	chain    Chain
	notifier Notifier
	journal  db.Journal
	tracker  *Tracker
	now      func() time.Time
}

func NewMonitor(cfg Config, chain Chain, notifier Notifier, journal db.Journal) *Monitor {
	if journal == nil {
		journal = db.NoopJournal{}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Monitor{
		cfg:      cfg,
		chain:    chain,
		notifier: notifier,
		journal:  journal,
		tracker:  NewTracker(cfg.Threshold),
		now:      time.Now,
	}
}

// LoadState restores the baseline from the state file. A missing file or a
// file written for another address leaves the tracker empty.
func (m *Monitor) LoadState() error {
	if m.cfg.StateFile == "" {
		return nil
	}

	var st state
	if err := fs.LoadJSON(m.cfg.StateFile, &st); err != nil {
		if errors.Is(err, fs.ErrNotFound) {
			return nil
		}
		return err
	}
	if st.Address != m.cfg.Address || st.CoinType != m.cfg.CoinType {
		log.LogWarn("State file belongs to another address, ignoring",
			zap.String("stateAddress", st.Address),
			zap.String("address", m.cfg.Address))
		return nil
	}

	balance, err := decimal.NewFromString(st.Balance)
	if err != nil {
		return fmt.Errorf("invalid balance in state file: %w", err)
	}
	m.tracker.Restore(balance)
	log.LogInfo("Restored previous balance",
		zap.String("balance", FormatMIST(balance)),
		zap.Time("updatedAt", st.UpdatedAt))
	return nil
}

func (m *Monitor) saveState(balance decimal.Decimal) {
	if m.cfg.StateFile == "" {
		return
	}
	st := state{
		Address:   m.cfg.Address,
		CoinType:  m.cfg.CoinType,
		Balance:   balance.String(),
		UpdatedAt: m.now(),
	}
	if err := fs.SaveJSON(m.cfg.StateFile, st); err != nil {
		log.LogWarn("Failed to save monitor state", zap.Error(err))
	}
}

// Tick runs one poll: read balance, compare, alert.
// A failed balance read leaves the baseline untouched.
func (m *Monitor) Tick(ctx context.Context) (Observation, error) {
	balance, err := m.chain.GetBalance(ctx, m.cfg.Address, m.cfg.CoinType)
	if err != nil {
		return Observation{}, fmt.Errorf("get balance: %w", err)
	}
	current, err := balance.Total()
	if err != nil {
		return Observation{}, err
	}

	obs := m.tracker.Observe(current)
	m.saveState(current)

	log.LogInfo("profit_address_balance",
		zap.String("address", m.cfg.Address),
		zap.String("balance", FormatMIST(current)),
		zap.Bool("baseline", obs.Baseline))

	if !obs.Triggered {
		return obs, nil
	}

	log.LogSuccess("Large profit detected",
		zap.String("previous", FormatMIST(obs.Previous)),
		zap.String("current", FormatMIST(obs.Current)),
		zap.String("profit", FormatMIST(obs.Profit)))

	return obs, m.alert(ctx, obs)
}

func (m *Monitor) alert(ctx context.Context, obs Observation) error {
	digest, err := m.chain.LatestIncomingDigest(ctx, m.cfg.Address)
	if err != nil {
		return fmt.Errorf("lookup profit tx: %w", err)
	}

	msg := FormatAlert(Alert{
		Previous: obs.Previous,
		Current:  obs.Current,
		TxLink:   TxLink(m.cfg.ExplorerTxURL, digest),
	})
	notifyErr := m.notifier.Notify(msg)

	if err := m.journal.Record(&db.ProfitEvent{
		ObservedAt:      m.now(),
		Address:         m.cfg.Address,
		PreviousBalance: obs.Previous.String(),
		CurrentBalance:  obs.Current.String(),
		Profit:          obs.Profit.String(),
		TxDigest:        digest,
	}); err != nil {
		log.LogWarn("Failed to record profit event", zap.Error(err))
	}

	if notifyErr != nil {
		return fmt.Errorf("notify: %w", notifyErr)
	}
	log.LogSuccess("Large profit alert sent", zap.String("digest", digest))
	return nil
}

// Run polls until ctx is cancelled. Errors are logged and the loop continues.
func (m *Monitor) Run(ctx context.Context) error {
	log.LogSuccess("Profit monitor started",
		zap.String("address", m.cfg.Address),
		zap.String("threshold", FormatMIST(m.cfg.Threshold)),
		zap.Duration("pollInterval", m.cfg.PollInterval))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.LogInfo("Profit monitor stopped")
			return nil
		case <-timer.C:
		}

		if _, err := m.Tick(ctx); err != nil && ctx.Err() == nil {
			log.LogError("Profit monitor iteration failed", zap.Error(err))
		}
		timer.Reset(m.cfg.PollInterval)
	}
}
