package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	AuthSecret           string
	RewardCallbackSecret string
	AlertWebhookURL      string
	MinWithdrawalPoints  int64
	PointsPerDollar      int64
	StoreTimeout         time.Duration
	StoreRetries         int
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultAuthSecret          = "change-me-in-production"
	defaultMinWithdrawalPoints = 5000
	defaultPointsPerDollar     = 1000
	defaultStoreTimeout        = 3 * time.Second
	defaultStoreRetries        = 3
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from a local .env file (if present), environment
// variables and flags, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		AuthSecret:           getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		RewardCallbackSecret: getString(lookup, "REWARD_CALLBACK_SECRET", ""),
		AlertWebhookURL:      getString(lookup, "ALERT_WEBHOOK_URL", ""),
		MinWithdrawalPoints:  getInt64(lookup, "MIN_WITHDRAWAL_POINTS", defaultMinWithdrawalPoints),
		PointsPerDollar:      getInt64(lookup, "POINTS_PER_DOLLAR", defaultPointsPerDollar),
		StoreTimeout:         getDuration(lookup, "STORE_TIMEOUT", defaultStoreTimeout),
		StoreRetries:         getInt(lookup, "STORE_RETRIES", defaultStoreRetries),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("rewardhub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		storeTimeoutStr    = cfg.StoreTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret shared with the identity provider")
	fs.StringVar(&cfg.RewardCallbackSecret, "reward-secret", cfg.RewardCallbackSecret, "Secret for reward postback signatures")
	fs.StringVar(&cfg.AlertWebhookURL, "alert-webhook", cfg.AlertWebhookURL, "Operator alert webhook URL")
	fs.Int64Var(&cfg.MinWithdrawalPoints, "min-withdrawal", cfg.MinWithdrawalPoints, "Minimum points per withdrawal request")
	fs.Int64Var(&cfg.PointsPerDollar, "points-per-dollar", cfg.PointsPerDollar, "Points to USD conversion rate")
	fs.StringVar(&storeTimeoutStr, "store-timeout", storeTimeoutStr, "Per-call storage deadline")
	fs.IntVar(&cfg.StoreRetries, "store-retries", cfg.StoreRetries, "Read retries on storage timeout")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StoreTimeout, err = time.ParseDuration(storeTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.MinWithdrawalPoints <= 0 {
		cfg.MinWithdrawalPoints = defaultMinWithdrawalPoints
	}

	if cfg.PointsPerDollar <= 0 {
		cfg.PointsPerDollar = defaultPointsPerDollar
	}

	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}

	if cfg.StoreRetries < 0 {
		cfg.StoreRetries = defaultStoreRetries
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
