package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config centralizes every environment-driven knob the venue exposes, in
// place of scattered os.Getenv calls. All keys are read from the
// environment with the same names they always had: PORT, LOG_LEVEL, and so
// on, just resolved in one place now.
type Config struct {
	Port                  string
	LogLevel              string
	LogFormat             string
	LogFile               string
	RateLimitMax          int
	RateLimitWindow       time.Duration
	RateLimitDisabled     bool
	MaxConcurrentRequests int64
	MaintenanceMode       bool
	ShutdownTimeout       time.Duration
}

// Load resolves a Config from the process environment, falling back to the
// venue's defaults for anything unset. The two durations also fall back to
// their defaults when unparsable or non-positive; an unparsable number or
// boolean reads as zero or false.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "")
	v.SetDefault("log_file", "")
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("rate_limit_window", "1s")
	v.SetDefault("rate_limit_disabled", false)
	v.SetDefault("max_concurrent_requests", 0)
	v.SetDefault("maintenance_mode", false)
	v.SetDefault("shutdown_timeout", "10s")

	rateWindow, err := time.ParseDuration(v.GetString("rate_limit_window"))
	if err != nil || rateWindow <= 0 {
		rateWindow = time.Second
	}
	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil || shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Config{
		Port:                  v.GetString("port"),
		LogLevel:              v.GetString("log_level"),
		LogFormat:             v.GetString("log_format"),
		LogFile:               v.GetString("log_file"),
		RateLimitMax:          v.GetInt("rate_limit_max"),
		RateLimitWindow:       rateWindow,
		RateLimitDisabled:     v.GetBool("rate_limit_disabled"),
		MaxConcurrentRequests: v.GetInt64("max_concurrent_requests"),
		MaintenanceMode:       v.GetBool("maintenance_mode"),
		ShutdownTimeout:       shutdownTimeout,
	}
}
