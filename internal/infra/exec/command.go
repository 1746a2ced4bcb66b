package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes external binaries with a per-call timeout.
type Runner struct {
	Timeout time.Duration
}

// NewRunner returns a Runner; zero timeout means 30s.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{Timeout: timeout}
}

// Run executes name with args and returns combined output and error
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if err := ValidateInstalled(name); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output, fmt.Errorf("command %s timed out after %v", name, r.Timeout)
	}
	if err != nil {
		return output, &CommandError{Name: name, Args: args, Output: bytes.TrimSpace(output), Err: err}
	}
	return output, nil
}

// ValidateInstalled checks that the binary is available in PATH
func ValidateInstalled(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s is not installed or not in PATH: %w", name, err)
	}
	return nil
}

// CommandError is returned when the process exits unsuccessfully.
type CommandError struct {
	Name   string
	Args   []string
	Output []byte
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
	if len(e.Output) > 0 {
		msg += ": " + string(e.Output)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// Redact returns a copy with every arg equal to secret masked. Output is kept.
func (e *CommandError) Redact(secret string) *CommandError {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		if secret != "" && arg == secret {
			arg = "********"
		}
		args[i] = arg
	}
	return &CommandError{Name: e.Name, Args: args, Output: e.Output, Err: e.Err}
}
