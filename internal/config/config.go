// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/retroenv/retrogolib/log"
)

// RedisURLEnv is the environment variable holding the default Redis URL.
const RedisURLEnv = "TSB_REDIS_URL"

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// RedisURL returns the flag value if set, otherwise the value of the
// environment variable.
func RedisURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(RedisURLEnv)
}

// CreateRedisClient creates a Redis client for the given URL.
func CreateRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
