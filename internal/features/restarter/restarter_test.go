package restarter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"sui-arb-ops/internal/infra/exec"
	log "sui-arb-ops/internal/infra/log"
	"sui-arb-ops/internal/infra/tmux"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu        sync.Mutex
	calls     []string
	killErr   error
	createErr error
	sendErr   error
	missing   bool
	sent      []string
}

func (f *fakeSession) Name() string { return "mev-arb-bot" }

func (f *fakeSession) Kill(ctx context.Context) error {
	f.record("kill")
	return f.killErr
}

func (f *fakeSession) Create(ctx context.Context) error {
	f.record("create")
	return f.createErr
}

func (f *fakeSession) SendKeys(ctx context.Context, line string) error {
	f.record("send")
	f.mu.Lock()
	f.sent = append(f.sent, line)
	f.mu.Unlock()
	return f.sendErr
}

func (f *fakeSession) Exists(ctx context.Context) bool {
	f.record("exists")
	return !f.missing
}

func (f *fakeSession) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSession) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fixedDelay fires shortly after now so Run loops quickly
type fixedDelay time.Duration

func (d fixedDelay) Next(t time.Time) time.Time { return t.Add(time.Duration(d)) }

func testCommand() BotCommand {
	return BotCommand{PrivateKey: "suiprivkey1qtest", RecordPoolIDs: true, UseDBSimulator: true, Workers: 10}
}

func TestRestartOnceSequence(t *testing.T) {
	session := &fakeSession{}
	r := New(session, testCommand(), fixedDelay(time.Hour))

	require.NoError(t, r.RestartOnce(context.Background()))
	assert.Equal(t, []string{"kill", "create", "exists", "send"}, session.calls)
	require.Len(t, session.sent, 1)
	assert.Contains(t, session.sent[0], "--private-key suiprivkey1qtest")
}

func TestRestartOnceToleratesMissingSession(t *testing.T) {
	session := &fakeSession{killErr: errors.New("can't find session")}
	r := New(session, testCommand(), fixedDelay(time.Hour))

	require.NoError(t, r.RestartOnce(context.Background()))
	assert.Equal(t, []string{"kill", "create", "exists", "send"}, session.calls)
}

func TestRestartOnceCreateFailureAborts(t *testing.T) {
	session := &fakeSession{createErr: errors.New("duplicate session")}
	r := New(session, testCommand(), fixedDelay(time.Hour))

	err := r.RestartOnce(context.Background())
	require.ErrorContains(t, err, "duplicate session")
	assert.Equal(t, []string{"kill", "create"}, session.calls)
}

func TestRestartOnceSendFailure(t *testing.T) {
	session := &fakeSession{sendErr: errors.New("no server running")}
	r := New(session, testCommand(), fixedDelay(time.Hour))

	err := r.RestartOnce(context.Background())
	require.ErrorContains(t, err, "failed to execute tmux command")
	assert.Equal(t, []string{"kill", "create", "exists", "send"}, session.calls)
}

func TestRestartOnceWarnsWhenSessionMissing(t *testing.T) {
	session := &fakeSession{missing: true}
	r := New(session, testCommand(), fixedDelay(time.Hour))

	require.NoError(t, r.RestartOnce(context.Background()))
	assert.Equal(t, []string{"kill", "create", "exists", "send"}, session.calls)
}

// sendFailRunner behaves like tmux with no server: send-keys exits 1
type sendFailRunner struct{}

func (sendFailRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if args[0] == "send-keys" {
		return nil, &exec.CommandError{Name: name, Args: args, Output: []byte("no server running"), Err: errors.New("exit status 1")}
	}
	return nil, nil
}

// cyclesThenCancel lets Run complete n cycles and cancels on the last wait.
func cyclesThenCancel(r *Restarter, n int, cancel context.CancelFunc) *[]time.Duration {
	var waits []time.Duration
	r.after = func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		ch := make(chan time.Time, 1)
		if len(waits) < n {
			ch <- time.Time{}
		} else {
			cancel()
		}
		return ch
	}
	return &waits
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	log.Sync()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunNeverLogsPrivateKeyOnSendFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_restarter.log")
	require.NoError(t, log.Setup(path))

	cmd := testCommand()
	cmd.PrivateKey = "suiprivkey1qleakcheck"
	r := New(tmux.NewSession(sendFailRunner{}, "tmux", "mev-arb-bot", ""), cmd, fixedDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cyclesThenCancel(r, 1, cancel)

	require.NoError(t, r.Run(ctx))

	out := readLog(t, path)
	assert.Contains(t, out, "Restart failed")
	assert.Contains(t, out, "no server running")
	assert.NotContains(t, out, "suiprivkey1qleakcheck")
}

func TestRunLogsNextRestartEachCycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_restarter.log")
	require.NoError(t, log.Setup(path))

	sched, err := ParseSchedule("@every 3h")
	require.NoError(t, err)
	r := New(&fakeSession{}, testCommand(), sched)

	base := time.Date(2026, 10, 15, 9, 30, 15, 0, time.UTC)
	clock := []time.Time{base, base.Add(3*time.Hour + 2*time.Second)}
	r.now = func() time.Time {
		now := clock[0]
		if len(clock) > 1 {
			clock = clock[1:]
		}
		return now
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	waits := cyclesThenCancel(r, 2, cancel)

	require.NoError(t, r.Run(ctx))

	assert.Equal(t, []time.Duration{3 * time.Hour, 3 * time.Hour}, *waits)

	out := readLog(t, path)
	assert.Equal(t, 2, strings.Count(out, "Next restart scheduled at: "))
	assert.Contains(t, out, "Next restart scheduled at: 2026-10-15 12:30:15")
	assert.Contains(t, out, "Next restart scheduled at: 2026-10-15 15:30:17")
	assert.Contains(t, out, "Script terminated by user")
}

func TestNextRestartEveryInterval(t *testing.T) {
	sched, err := ParseSchedule("@every 3h")
	require.NoError(t, err)
	r := New(&fakeSession{}, testCommand(), sched)

	now := time.Date(2026, 10, 15, 9, 30, 15, 0, time.UTC)
	assert.Equal(t, now.Add(3*time.Hour), r.NextRestart(now))

	// each cycle recomputes from the current time
	later := now.Add(3*time.Hour + 2*time.Second)
	assert.Equal(t, later.Add(3*time.Hour), r.NextRestart(later))

	withNanos := now.Add(500 * time.Millisecond)
	assert.Equal(t, now.Add(3*time.Hour), r.NextRestart(withNanos))
}

func TestParseScheduleDefaultsAndCron(t *testing.T) {
	sched, err := ParseSchedule("")
	require.NoError(t, err)
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(3*time.Hour), sched.Next(now))

	sched, err = ParseSchedule("0 */6 * * *")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC), sched.Next(now))

	_, err = ParseSchedule("every three hours")
	require.Error(t, err)
}

func TestRunRestartsUntilCancelled(t *testing.T) {
	session := &fakeSession{createErr: errors.New("tmux server exited")}
	r := New(session, testCommand(), fixedDelay(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Count(strings.Join(session.snapshot(), ","), "create") >= 3
	}, 2*time.Second, 5*time.Millisecond, "failed restarts must not stop the loop")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
