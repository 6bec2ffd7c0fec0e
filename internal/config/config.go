package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/drinktab/drinktab/internal/pkg/money"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	MemberGroup     string
	AdminGroup      string
	LoginURL        string
	UserinfoURL     string
	LogLevel        string
	DrinkCost       int64
	RevertWindow    time.Duration
	ReportInterval  time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultMemberGroup     = "members"
	defaultAdminGroup      = "admins"
	defaultLogLevel        = "info"
	defaultDrinkCost       = "1.00"
	defaultRevertWindow    = 60 * time.Second
	defaultReportInterval  = 5 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables and flags. Flags win over environment values.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		MemberGroup:     getString(lookup, "MEMBER_GROUP", defaultMemberGroup),
		AdminGroup:      getString(lookup, "ADMIN_GROUP", defaultAdminGroup),
		LoginURL:        getString(lookup, "LOGIN_URL", ""),
		UserinfoURL:     getString(lookup, "OIDC_USERINFO_URL", ""),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		RevertWindow:    getDuration(lookup, "REVERT_WINDOW", defaultRevertWindow),
		ReportInterval:  getDuration(lookup, "REPORT_INTERVAL", defaultReportInterval),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("drinktab", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		drinkCostStr      = getString(lookup, "DRINK_COST", defaultDrinkCost)
		revertWindowStr   = cfg.RevertWindow.String()
		reportIntervalStr = cfg.ReportInterval.String()
		shutdownStr       = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN (empty selects the in-memory store)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for verifying bearer tokens")
	fs.StringVar(&cfg.MemberGroup, "member-group", cfg.MemberGroup, "Group granting general membership")
	fs.StringVar(&cfg.AdminGroup, "admin-group", cfg.AdminGroup, "Group granting administrative privileges")
	fs.StringVar(&cfg.LoginURL, "login-url", cfg.LoginURL, "Login page to redirect unauthenticated browsers to")
	fs.StringVar(&cfg.UserinfoURL, "userinfo-url", cfg.UserinfoURL, "OIDC userinfo endpoint for opaque access tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (debug, info, warn, error)")
	fs.StringVar(&drinkCostStr, "drink-cost", drinkCostStr, "Price of one drink in whole currency units")
	fs.StringVar(&revertWindowStr, "revert-window", revertWindowStr, "Window during which the last drink can be undone")
	fs.StringVar(&reportIntervalStr, "report-interval", reportIntervalStr, "Interval between ledger totals reports")
	fs.StringVar(&shutdownStr, "shutdown-timeout", shutdownStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.DrinkCost, err = money.ParseAmount(drinkCostStr); err != nil {
		return nil, fmt.Errorf("invalid drink cost: %w", err)
	}

	if cfg.RevertWindow, err = time.ParseDuration(revertWindowStr); err != nil {
		return nil, fmt.Errorf("invalid revert window: %w", err)
	}

	if cfg.ReportInterval, err = time.ParseDuration(reportIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid report interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.DrinkCost < 0 {
		return nil, fmt.Errorf("drink cost must not be negative")
	}

	if cfg.RevertWindow <= 0 {
		cfg.RevertWindow = defaultRevertWindow
	}

	if cfg.ReportInterval <= 0 {
		cfg.ReportInterval = defaultReportInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MemberGroup == "" || cfg.AdminGroup == "" {
		return nil, fmt.Errorf("member and admin group names must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
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
