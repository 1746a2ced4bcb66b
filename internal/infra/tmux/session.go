package tmux

// Thin wrapper over the tmux command line for a single named session

import (
	"context"
	"errors"
	"fmt"

	"sui-arb-ops/internal/infra/exec"
)

// Runner executes a binary and returns its combined output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Session - a named tmux session
type Session struct {
	runner  Runner
	bin     string
	name    string
	workDir string
}

// NewSession returns a handle for session name; bin defaults to "tmux".
// workDir, when set, becomes the start directory of new sessions.
func NewSession(runner Runner, bin, name, workDir string) *Session {
	if bin == "" {
		bin = "tmux"
	}
	return &Session{runner: runner, bin: bin, name: name, workDir: workDir}
}

func (s *Session) Name() string { return s.name }

// Kill terminates the session. Fails when the session does not exist.
func (s *Session) Kill(ctx context.Context) error {
	if _, err := s.runner.Run(ctx, s.bin, "kill-session", "-t", s.name); err != nil {
		return fmt.Errorf("kill session %s: %w", s.name, err)
	}
	return nil
}

// Create starts a new detached session.
func (s *Session) Create(ctx context.Context) error {
	args := []string{"new-session", "-d", "-s", s.name}
	if s.workDir != "" {
		args = append(args, "-c", s.workDir)
	}
	if _, err := s.runner.Run(ctx, s.bin, args...); err != nil {
		return fmt.Errorf("create session %s: %w", s.name, err)
	}
	return nil
}

// SendKeys types line into the session and presses Enter.
// line may carry secrets, so it never appears in the returned error.
func (s *Session) SendKeys(ctx context.Context, line string) error {
	if _, err := s.runner.Run(ctx, s.bin, "send-keys", "-t", s.name, line, "Enter"); err != nil {
		var cmdErr *exec.CommandError
		if errors.As(err, &cmdErr) {
			err = cmdErr.Redact(line)
		}
		return fmt.Errorf("send keys to %s: %w", s.name, err)
	}
	return nil
}

// Exists reports whether the session is running.
func (s *Session) Exists(ctx context.Context) bool {
	_, err := s.runner.Run(ctx, s.bin, "has-session", "-t", s.name)
	return err == nil
}
