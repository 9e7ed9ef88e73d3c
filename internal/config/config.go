package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Binance Futures testnet API
	APIKey    string
	APISecret string
	BaseURL   string
	WSURL     string

	// Request signing
	RecvWindowMS int

	// Per-symbol trading filters (optional YAML file)
	SymbolFiltersPath string

	// Telemetry
	LogLevel string
	LogFile  string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIKey:    envStr("BINANCE_TESTNET_KEY", ""),
		APISecret: envStr("BINANCE_TESTNET_SECRET", ""),
		BaseURL:   envStr("BINANCE_BASE_URL", "https://testnet.binancefuture.com"),
		WSURL:     envStr("BINANCE_WS_URL", "wss://fstream.binancefuture.com"),

		RecvWindowMS: envInt("BINANCE_RECV_WINDOW_MS", 5000),

		SymbolFiltersPath: envStr("SYMBOL_FILTERS_PATH", ""),

		LogLevel: envStr("LOG_LEVEL", "info"),
		LogFile:  envStr("LOG_FILE", "trading_bot.log"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
