package profit

import (
	"github.com/shopspring/decimal"
)

// Observation is the outcome of comparing one balance reading with the previous one.
type Observation struct {
	Previous  decimal.Decimal
	Current   decimal.Decimal
	Profit    decimal.Decimal
	Baseline  bool // first reading, nothing to compare against
	Triggered bool
}

// Tracker remembers the last observed balance and flags increases of at
// least threshold. Amounts are in MIST.
type Tracker struct {
	threshold   decimal.Decimal
	previous    decimal.Decimal
	hasPrevious bool
}

func NewTracker(threshold decimal.Decimal) *Tracker {
	return &Tracker{threshold: threshold}
}

// Restore seeds the baseline, e.g. from a state file.
func (t *Tracker) Restore(balance decimal.Decimal) {
	t.previous = balance
	t.hasPrevious = true
}

// Previous returns the current baseline.
func (t *Tracker) Previous() (decimal.Decimal, bool) {
	return t.previous, t.hasPrevious
}

// Observe compares current with the baseline and then replaces the baseline
// with current, whether or not the threshold was met.
func (t *Tracker) Observe(current decimal.Decimal) Observation {
	obs := Observation{Current: current}
	if !t.hasPrevious {
		obs.Baseline = true
	} else {
		obs.Previous = t.previous
		obs.Profit = current.Sub(t.previous)
		obs.Triggered = obs.Profit.GreaterThanOrEqual(t.threshold)
	}

	t.previous = current
	t.hasPrevious = true
	return obs
}
