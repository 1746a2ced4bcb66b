package restarter

import (
	"regexp"
	"strconv"
	"strings"
)

const redacted = "********"

// BotCommand is the shell line typed into the session to start the arb bot
type BotCommand struct {
	PrivateKey     string
	RecordPoolIDs  bool // ENABLE_RECORD_POOL_RELATED_ID=1
	UseDBSimulator bool
	MaxRecentArbs  int
	Workers        int
	NumSimulators  int
	PreloadPath    string
}

// String returns the full command including the private key. Never log it.
func (c BotCommand) String() string {
	return c.build(shellQuote(c.PrivateKey))
}

// Redacted is String with the private key masked
func (c BotCommand) Redacted() string {
	return c.build(redacted)
}

func (c BotCommand) build(key string) string {
	var parts []string
	if c.RecordPoolIDs {
		parts = append(parts, "ENABLE_RECORD_POOL_RELATED_ID=1")
	}
	parts = append(parts, "cargo run -r --bin arb start-bot", "--private-key", key)
	if c.UseDBSimulator {
		parts = append(parts, "--use-db-simulator")
	}
	if c.MaxRecentArbs > 0 {
		parts = append(parts, "--max-recent-arbs", strconv.Itoa(c.MaxRecentArbs))
	}
	if c.Workers > 0 {
		parts = append(parts, "--workers", strconv.Itoa(c.Workers))
	}
	if c.NumSimulators > 0 {
		parts = append(parts, "--num-simulators", strconv.Itoa(c.NumSimulators))
	}
	if c.PreloadPath != "" {
		parts = append(parts, "--preload-path", shellQuote(c.PreloadPath))
	}
	return strings.Join(parts, " ")
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_./:=+-]+$`)

func shellQuote(s string) string {
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
