package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	OrdersFile           string
	MenuFile             string
	AdminUser            string
	AdminPass            string
	AdminPassHash        string
	JWTSecret            string
	PaymentProviderURL   string
	PaymentWebhookSecret string
	SuccessURL           string
	CancelURL            string
	OriginLat            float64
	OriginLng            float64
	RouteSegments        int
	MoveInterval         time.Duration
	StatusDelays         []time.Duration
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultOrdersFile      = "orders.json"
	defaultMenuFile        = "menu.json"
	defaultAdminUser       = "admin"
	defaultAdminPass       = "password"
	defaultJWTSecret       = "change-me-in-production"
	defaultSuccessURL      = "http://localhost:8080/payment-success.html"
	defaultCancelURL       = "http://localhost:8080"
	defaultOriginLat       = 5.6037
	defaultOriginLng       = -0.1870
	defaultRouteSegments   = 6
	defaultMoveInterval    = 3 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Status timers fire this long after the previous one, starting from order
// creation: cumulative offsets +2s, +9s, +23s.
var defaultStatusDelays = []time.Duration{2 * time.Second, 7 * time.Second, 14 * time.Second}

// Load parses configuration from flags and environment variables. A .env
// file in the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		OrdersFile:           getString(lookup, "ORDERS_FILE", defaultOrdersFile),
		MenuFile:             getString(lookup, "MENU_FILE", defaultMenuFile),
		AdminUser:            getString(lookup, "ADMIN_USER", defaultAdminUser),
		AdminPass:            getString(lookup, "ADMIN_PASS", defaultAdminPass),
		AdminPassHash:        getString(lookup, "ADMIN_PASS_HASH", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		PaymentProviderURL:   getString(lookup, "PAYMENT_PROVIDER_URL", ""),
		PaymentWebhookSecret: getString(lookup, "PAYMENT_WEBHOOK_SECRET", ""),
		SuccessURL:           getString(lookup, "SUCCESS_URL", defaultSuccessURL),
		CancelURL:            getString(lookup, "CANCEL_URL", defaultCancelURL),
		OriginLat:            getFloat(lookup, "ORIGIN_LAT", defaultOriginLat),
		OriginLng:            getFloat(lookup, "ORIGIN_LNG", defaultOriginLng),
		RouteSegments:        getInt(lookup, "ROUTE_SEGMENTS", defaultRouteSegments),
		MoveInterval:         getDuration(lookup, "MOVE_INTERVAL", defaultMoveInterval),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	delays, err := parseDelays(getString(lookup, "STATUS_DELAYS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid status delays: %w", err)
	}
	cfg.StatusDelays = delays

	fs := flag.NewFlagSet("bitenow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	moveIntervalStr := cfg.MoveInterval.String()
	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.OrdersFile, "orders-file", cfg.OrdersFile, "Path to the order collection file")
	fs.StringVar(&cfg.MenuFile, "menu-file", cfg.MenuFile, "Path to the menu file")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing admin tokens")
	fs.StringVar(&cfg.PaymentProviderURL, "payment-url", cfg.PaymentProviderURL, "Payment provider base URL")
	fs.IntVar(&cfg.RouteSegments, "route-segments", cfg.RouteSegments, "Delivery route segment count")
	fs.StringVar(&moveIntervalStr, "move-interval", moveIntervalStr, "Interval between courier position updates")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.MoveInterval, err = time.ParseDuration(moveIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid move interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.RouteSegments <= 0 {
		cfg.RouteSegments = defaultRouteSegments
	}

	if cfg.MoveInterval <= 0 {
		cfg.MoveInterval = defaultMoveInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if len(cfg.StatusDelays) == 0 {
		cfg.StatusDelays = append([]time.Duration(nil), defaultStatusDelays...)
	}

	if cfg.OrdersFile == "" {
		return nil, fmt.Errorf("orders file path must be provided")
	}

	if cfg.MenuFile == "" {
		return nil, fmt.Errorf("menu file path must be provided")
	}

	return cfg, nil
}

// parseDelays reads a comma separated list of durations, each measured from
// the previous status change.
func parseDelays(raw string) ([]time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	delays := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		d, err := time.ParseDuration(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("delay must be positive: %s", part)
		}
		delays = append(delays, d)
	}
	return delays, nil
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

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
