package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// DefaultTickers is the leveraged-ETF universe scanned when the config
// names no tickers of its own.
var DefaultTickers = []string{
	"SOXL", "TQQQ", "TECL", "SPXL", "FNGU", "BULZ", "TSLL",
	"NVDL", "BITX", "QLD", "UPRO", "SSO", "LABU", "WEBL",
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Twilio struct {
		AccountSID string `yaml:"account_sid"`
		AuthToken  string `yaml:"auth_token"`
		From       string `yaml:"from"`
		To         string `yaml:"to"`
	} `yaml:"twilio"`
	Monitor struct {
		Tickers     []string `yaml:"tickers"`
		Benchmark   string   `yaml:"benchmark"`
		Mode        string   `yaml:"mode"`
		AccountSize float64  `yaml:"account_size"`
	} `yaml:"monitor"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		SummaryCron string `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath   string `yaml:"sqlite_path"`
		TradeLogPath string `yaml:"trade_log_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("TWILIO_ACCOUNT_SID"); v != "" {
		cfg.Twilio.AccountSID = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		cfg.Twilio.AuthToken = v
	}
	if v := os.Getenv("TWILIO_FROM"); v != "" {
		cfg.Twilio.From = v
	}
	if v := os.Getenv("TWILIO_TO"); v != "" {
		cfg.Twilio.To = v
	}
	if v := os.Getenv("MONITOR_TICKERS"); v != "" {
		cfg.Monitor.Tickers = splitTickers(v)
	}
	if v := os.Getenv("MONITOR_BENCHMARK"); v != "" {
		cfg.Monitor.Benchmark = strings.ToUpper(strings.TrimSpace(v))
	}
	if v := os.Getenv("MONITOR_MODE"); v != "" {
		cfg.Monitor.Mode = v
	}
	if v := os.Getenv("ACCOUNT_SIZE"); v != "" {
		var size float64
		if _, err := fmt.Sscanf(v, "%f", &size); err == nil {
			cfg.Monitor.AccountSize = size
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_SUMMARY"); v != "" {
		cfg.Schedule.SummaryCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TRADE_LOG_PATH"); v != "" {
		cfg.Database.TradeLogPath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Monitor.Tickers) == 0 {
		cfg.Monitor.Tickers = DefaultTickers
	}
	if cfg.Monitor.Benchmark == "" {
		cfg.Monitor.Benchmark = "QQQ"
	}
	if cfg.Monitor.Mode == "" {
		cfg.Monitor.Mode = string(model.ModeBalanced)
	}
	if cfg.Monitor.AccountSize == 0 {
		cfg.Monitor.AccountSize = 175000
	}
	if cfg.Schedule.RefreshCron == "" {
		// every 5 minutes during the US morning session, Mon-Fri
		cfg.Schedule.RefreshCron = "0 */5 9-12 * * 1-5"
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 45 9 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/day_trade_monitor.db"
	}
	if cfg.Database.TradeLogPath == "" {
		cfg.Database.TradeLogPath = "data/trade_log.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Monitor.Tickers) == 0 {
		return fmt.Errorf("monitor.tickers must not be empty")
	}
	if c.Monitor.AccountSize <= 0 {
		return fmt.Errorf("monitor.account_size must be positive")
	}
	switch model.StrategyMode(c.Monitor.Mode) {
	case model.ModeBalanced, model.ModeStrict:
	default:
		return fmt.Errorf("monitor.mode must be %q or %q", model.ModeBalanced, model.ModeStrict)
	}
	return nil
}

// Mode returns the configured strategy mode as its typed value.
func (c *Config) Mode() model.StrategyMode {
	return model.StrategyMode(c.Monitor.Mode)
}

func splitTickers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.ToUpper(strings.TrimSpace(part)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
