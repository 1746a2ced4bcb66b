package profit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mist(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestTrackerFirstObservationIsBaseline(t *testing.T) {
	tr := NewTracker(mist(500000000))

	obs := tr.Observe(mist(10_000_000_000))
	assert.True(t, obs.Baseline)
	assert.False(t, obs.Triggered)

	prev, ok := tr.Previous()
	require.True(t, ok)
	assert.True(t, prev.Equal(mist(10_000_000_000)))
}

func TestTrackerThreshold(t *testing.T) {
	tests := []struct {
		name      string
		previous  int64
		current   int64
		triggered bool
	}{
		{"below threshold", 1_000_000_000, 1_499_999_999, false},
		{"exactly threshold", 1_000_000_000, 1_500_000_000, true},
		{"above threshold", 1_000_000_000, 3_000_000_000, true},
		{"no change", 1_000_000_000, 1_000_000_000, false},
		{"balance dropped", 3_000_000_000, 1_000_000_000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(mist(500000000))
			tr.Restore(mist(tt.previous))

			obs := tr.Observe(mist(tt.current))
			assert.Equal(t, tt.triggered, obs.Triggered)
			assert.False(t, obs.Baseline)
			assert.True(t, obs.Profit.Equal(mist(tt.current-tt.previous)))
		})
	}
}

func TestTrackerAlwaysReplacesBaseline(t *testing.T) {
	tr := NewTracker(mist(500000000))
	tr.Observe(mist(1_000_000_000))

	// triggered reading becomes the new baseline, so a repeat does not re-alert
	require.True(t, tr.Observe(mist(2_000_000_000)).Triggered)
	require.False(t, tr.Observe(mist(2_000_000_000)).Triggered)

	// small increments do not accumulate
	require.False(t, tr.Observe(mist(2_300_000_000)).Triggered)
	require.False(t, tr.Observe(mist(2_600_000_000)).Triggered)
}

func TestTrackerHandlesU128Balances(t *testing.T) {
	big, err := decimal.NewFromString("340282366920938463463374607431768211455")
	require.NoError(t, err)

	tr := NewTracker(mist(500000000))
	tr.Restore(big.Sub(mist(500000000)))
	assert.True(t, tr.Observe(big).Triggered)
}
