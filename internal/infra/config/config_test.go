package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("monitor", pflag.ContinueOnError)
	MonitorFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", writeConfig(t, "monitor:\n  poll_interval: 1\n")}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "https://fullnode.mainnet.sui.io:443", cfg.Sui.RPCURL)
	assert.Equal(t, int64(500000000), cfg.Monitor.ThresholdMist)
	assert.Equal(t, time.Second, cfg.Monitor.PollEvery())
	assert.Equal(t, "https://suivision.xyz/txblock/", cfg.Monitor.ExplorerTxURL)
	assert.Equal(t, "mev-arb-bot", cfg.Restarter.Session)
	assert.Equal(t, "@every 3h", cfg.Restarter.Schedule)
	assert.Equal(t, 18, cfg.Restarter.NumSimulators)
	assert.Equal(t, 0, cfg.Sui.MaxRetries, "the poll loop is the only retry by default")
	assert.True(t, cfg.Restarter.UseDBSimulator)
}

func TestLoadConfigPriority(t *testing.T) {
	path := writeConfig(t, `
monitor:
  profit_address: "0xfile"
  threshold_mist: 1000
telegram:
  chat_id: "-100file"
restarter:
  workers: 4
`)
	t.Setenv("BALANCE_DIFF_THRESHOLD", "2000")
	t.Setenv("SUI_ARB_BOT_TOKEN", "123:abc")

	fs := pflag.NewFlagSet("monitor", pflag.ContinueOnError)
	MonitorFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--telegram.chat_id", "-100flag"}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.App.ConfigFile)
	assert.Equal(t, "0xfile", cfg.Monitor.ProfitAddress)
	assert.Equal(t, int64(2000), cfg.Monitor.ThresholdMist)
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, "-100flag", cfg.Telegram.ChatID)
	assert.Equal(t, 4, cfg.Restarter.Workers)
	require.NoError(t, ValidateMonitor(cfg))
}

func TestLoadConfigMissingFile(t *testing.T) {
	fs := pflag.NewFlagSet("restarter", pflag.ContinueOnError)
	RestarterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))

	_, err := LoadConfig(fs)
	require.Error(t, err)
}

func TestValidateMonitor(t *testing.T) {
	cfg := &Config{
		Sui:      SuiConfig{RPCURL: "http://localhost"},
		Monitor:  MonitorConfig{ProfitAddress: "0x1", ThresholdMist: 1, PollInterval: 1},
		Telegram: TelegramConfig{BotToken: "t", ChatID: "c"},
	}
	require.NoError(t, ValidateMonitor(cfg))

	cfg.Monitor.ThresholdMist = 0
	require.ErrorContains(t, ValidateMonitor(cfg), "threshold_mist")

	cfg.Monitor.ThresholdMist = 1
	cfg.Telegram.ChatID = ""
	require.ErrorContains(t, ValidateMonitor(cfg), "telegram")
}

func TestValidateRestarter(t *testing.T) {
	cfg := &Config{Restarter: RestarterConfig{Session: "mev-arb-bot", Schedule: "@every 3h"}}
	require.ErrorContains(t, ValidateRestarter(cfg), "private_key")

	cfg.Restarter.PrivateKey = "suiprivkey1"
	require.NoError(t, ValidateRestarter(cfg))
}
