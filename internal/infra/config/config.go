package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config - settings for both tools
type Config struct {
	Sui       SuiConfig       `mapstructure:"sui"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Restarter RestarterConfig `mapstructure:"restarter"`
	App       AppConfig       `mapstructure:"app"`
}

// SuiConfig - JSON-RPC endpoint
type SuiConfig struct {
	RPCURL          string `mapstructure:"rpc_url"`
	RequestTimeout  int    `mapstructure:"request_timeout"` // seconds
	MaxRetries      int    `mapstructure:"max_retries"`
	RateLimit       int    `mapstructure:"rate_limit"` // requests per second
	MaxResponseSize int64  `mapstructure:"max_response_size"`
}

type MonitorConfig struct {
	ProfitAddress string `mapstructure:"profit_address"`
	CoinType      string `mapstructure:"coin_type"`       // empty = SUI
	ThresholdMist int64  `mapstructure:"threshold_mist"`  // 500000000 = 0.5 SUI
	PollInterval  int    `mapstructure:"poll_interval"`   // seconds
	ExplorerTxURL string `mapstructure:"explorer_tx_url"` // digest is appended
	StateFile     string `mapstructure:"state_file"`      // last observed balance
	JournalPath   string `mapstructure:"journal_path"`    // sqlite, empty disables
	LogFile       string `mapstructure:"log_file"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	ThreadID string `mapstructure:"thread_id"` // forum topic, optional
}

type RestarterConfig struct {
	Session        string `mapstructure:"session"`
	TmuxBin        string `mapstructure:"tmux_bin"`
	Schedule       string `mapstructure:"schedule"` // cron expression or @every
	CommandTimeout int    `mapstructure:"command_timeout"`
	LogFile        string `mapstructure:"log_file"`
	PrivateKey     string `mapstructure:"private_key"`
	WorkDir        string `mapstructure:"work_dir"`
	MaxRecentArbs  int    `mapstructure:"max_recent_arbs"`
	Workers        int    `mapstructure:"workers"`
	NumSimulators  int    `mapstructure:"num_simulators"`
	PreloadPath    string `mapstructure:"preload_path"`
	UseDBSimulator bool   `mapstructure:"use_db_simulator"`
	RecordPoolIDs  bool   `mapstructure:"record_pool_ids"`
}

type AppConfig struct {
	ConfigFile string `mapstructure:"config_file"`
}

// PollEvery returns the monitor poll interval as a duration.
func (c MonitorConfig) PollEvery() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}

// Timeout returns the RPC request timeout as a duration.
func (c SuiConfig) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// LoadConfig reads settings in increasing priority:
// 1. defaults
// 2. config.yaml (or --config)
// 3. .env file
// 4. environment
// 5. command line flags
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	configFile := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.ReadInConfig() // optional
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setupEnvAliases(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.App.ConfigFile = v.ConfigFileUsed()

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	// Sui
	v.BindEnv("sui.rpc_url", "SUI_RPC_URL")
	v.BindEnv("sui.request_timeout", "SUI_REQUEST_TIMEOUT")
	v.BindEnv("sui.max_retries", "SUI_MAX_RETRIES")

	// Monitor
	v.BindEnv("monitor.profit_address", "PROFIT_ADDRESS")
	v.BindEnv("monitor.threshold_mist", "BALANCE_DIFF_THRESHOLD")
	v.BindEnv("monitor.poll_interval", "MONITOR_POLL_INTERVAL")
	v.BindEnv("monitor.state_file", "MONITOR_STATE_FILE")
	v.BindEnv("monitor.journal_path", "MONITOR_JOURNAL_PATH")

	// Telegram
	v.BindEnv("telegram.bot_token", "SUI_ARB_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "GROUP_SUI_ARB")
	v.BindEnv("telegram.thread_id", "THREAD_ONCHAIN_LARGE_PROFIT")

	// Restarter
	v.BindEnv("restarter.session", "RESTARTER_SESSION")
	v.BindEnv("restarter.schedule", "RESTARTER_SCHEDULE")
	v.BindEnv("restarter.private_key", "ARB_PRIVATE_KEY")
	v.BindEnv("restarter.work_dir", "ARB_WORK_DIR")
	v.BindEnv("restarter.preload_path", "ARB_PRELOAD_PATH")
}

func setDefaults(v *viper.Viper) {
	// Sui
	v.SetDefault("sui.rpc_url", "https://fullnode.mainnet.sui.io:443")
	v.SetDefault("sui.request_timeout", 30)
	v.SetDefault("sui.max_retries", 0)
	v.SetDefault("sui.rate_limit", 10)
	v.SetDefault("sui.max_response_size", 10*1024*1024) // 10MB

	// Monitor
	v.SetDefault("monitor.profit_address", "")
	v.SetDefault("monitor.coin_type", "")
	v.SetDefault("monitor.threshold_mist", 500000000)
	v.SetDefault("monitor.poll_interval", 1)
	v.SetDefault("monitor.explorer_tx_url", "https://suivision.xyz/txblock/")
	v.SetDefault("monitor.state_file", "data_out/profit_monitor.json")
	v.SetDefault("monitor.journal_path", "")
	v.SetDefault("monitor.log_file", "logs/profit_monitor.log")

	// Telegram
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.thread_id", "")

	// Restarter
	v.SetDefault("restarter.session", "mev-arb-bot")
	v.SetDefault("restarter.tmux_bin", "tmux")
	v.SetDefault("restarter.schedule", "@every 3h")
	v.SetDefault("restarter.command_timeout", 30)
	v.SetDefault("restarter.log_file", "bot_restarter.log")
	v.SetDefault("restarter.private_key", "")
	v.SetDefault("restarter.work_dir", "")
	v.SetDefault("restarter.max_recent_arbs", 5)
	v.SetDefault("restarter.workers", 10)
	v.SetDefault("restarter.num_simulators", 18)
	v.SetDefault("restarter.preload_path", "/home/ubuntu/sui/pool_related_ids.txt")
	v.SetDefault("restarter.use_db_simulator", true)
	v.SetDefault("restarter.record_pool_ids", true)
}

// MonitorFlags registers flags for the monitor command.
func MonitorFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to config file (default ./config.yaml)")
	fs.String("sui.rpc_url", "https://fullnode.mainnet.sui.io:443", "Sui JSON-RPC endpoint (env: SUI_RPC_URL)")
	fs.String("monitor.profit_address", "", "Address to watch (env: PROFIT_ADDRESS)")
	fs.String("monitor.coin_type", "", "Coin type, empty for SUI")
	fs.Int64("monitor.threshold_mist", 500000000, "Minimum balance increase in MIST that triggers an alert (env: BALANCE_DIFF_THRESHOLD)")
	fs.Int("monitor.poll_interval", 1, "Poll interval in seconds (env: MONITOR_POLL_INTERVAL)")
	fs.String("monitor.state_file", "data_out/profit_monitor.json", "File holding the last observed balance (env: MONITOR_STATE_FILE)")
	fs.String("monitor.journal_path", "", "SQLite file for triggered alerts, empty disables (env: MONITOR_JOURNAL_PATH)")
	fs.String("telegram.chat_id", "", "Telegram chat id (env: GROUP_SUI_ARB)")
	fs.String("telegram.thread_id", "", "Telegram forum thread id (env: THREAD_ONCHAIN_LARGE_PROFIT)")
}

// RestarterFlags registers flags for the restarter command.
func RestarterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to config file (default ./config.yaml)")
	fs.String("restarter.session", "mev-arb-bot", "tmux session name (env: RESTARTER_SESSION)")
	fs.String("restarter.schedule", "@every 3h", "Restart schedule, cron expression or @every <duration> (env: RESTARTER_SCHEDULE)")
	fs.String("restarter.log_file", "bot_restarter.log", "Log file")
	fs.String("restarter.work_dir", "", "Directory to cd into before starting the bot (env: ARB_WORK_DIR)")
	fs.String("restarter.preload_path", "/home/ubuntu/sui/pool_related_ids.txt", "Pool related ids file passed to the bot (env: ARB_PRELOAD_PATH)")
	fs.Int("restarter.workers", 10, "Bot worker count")
	fs.Int("restarter.num_simulators", 18, "Bot simulator count")
	fs.Int("restarter.max_recent_arbs", 5, "Bot recent arbs window")
}

// ValidateMonitor checks settings required by the balance monitor.
func ValidateMonitor(cfg *Config) error {
	if cfg.Sui.RPCURL == "" {
		return fmt.Errorf("sui.rpc_url is required")
	}
	if cfg.Monitor.ProfitAddress == "" {
		return fmt.Errorf("monitor.profit_address is required")
	}
	if cfg.Monitor.ThresholdMist <= 0 {
		return fmt.Errorf("monitor.threshold_mist must be positive, got %d", cfg.Monitor.ThresholdMist)
	}
	if cfg.Monitor.PollInterval <= 0 {
		return fmt.Errorf("monitor.poll_interval must be positive, got %d", cfg.Monitor.PollInterval)
	}
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id are required")
	}
	return nil
}

// ValidateRestarter checks settings required by the bot restarter.
func ValidateRestarter(cfg *Config) error {
	if cfg.Restarter.Session == "" {
		return fmt.Errorf("restarter.session is required")
	}
	if cfg.Restarter.PrivateKey == "" {
		return fmt.Errorf("restarter.private_key is required (env: ARB_PRIVATE_KEY)")
	}
	if cfg.Restarter.Schedule == "" {
		return fmt.Errorf("restarter.schedule is required")
	}
	return nil
}
