package config

import (
	"github.com/kismat91/FinDocGPT/pkg/config"
)

// Upload holds document upload configuration.
type Upload struct {
	Dir               string   `mapstructure:"dir"`
	MaxFileSize       int64    `mapstructure:"max_file_size"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// MarketData holds market data caching and snapshot configuration.
type MarketData struct {
	CacheTTL         string   `mapstructure:"cache_ttl"`
	SnapshotSchedule string   `mapstructure:"snapshot_schedule"`
	SnapshotSymbols  []string `mapstructure:"snapshot_symbols"`
}

// NewsFeed holds the RSS news feed configuration for market sentiment.
type NewsFeed struct {
	BaseURL  string `mapstructure:"base_url"`
	MaxItems int    `mapstructure:"max_items"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Upload       Upload          `mapstructure:"upload"`
	Gemini       Gemini          `mapstructure:"gemini"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	MarketData   MarketData      `mapstructure:"market_data"`
	NewsFeed     NewsFeed        `mapstructure:"news_feed"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
