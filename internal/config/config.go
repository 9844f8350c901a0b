package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Formatter timing
	DebounceDelay time.Duration // quiet period before a mutation-triggered pass (default: 250ms)
	SettleDelay   time.Duration // wait after a navigation event before scanning (default: 1s)

	// Settings persistence. Redis wins when configured; otherwise the yaml
	// file backend; with neither, settings live in memory only.
	SettingsFile string // path to the settings yaml file (optional)

	// Redis (optional, empty addr = disabled)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	return &Config{
		ListenPort:      getenv("ABSTIME_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ABSTIME_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("ABSTIME_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ABSTIME_PRETTY_LOG", true),

		DebounceDelay: mustDuration("ABSTIME_DEBOUNCE_DELAY", 250*time.Millisecond),
		SettleDelay:   mustDuration("ABSTIME_SETTLE_DELAY", time.Second),

		SettingsFile: getenv("ABSTIME_SETTINGS_FILE", ""),

		RedisAddr:           getenv("ABSTIME_REDIS_ADDR", ""),
		RedisUser:           getenv("ABSTIME_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("ABSTIME_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("ABSTIME_REDIS_DB", 0),
		RedisDT:             mustDuration("ABSTIME_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("ABSTIME_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("ABSTIME_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("ABSTIME_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("ABSTIME_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("ABSTIME_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("ABSTIME_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("ABSTIME_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("ABSTIME_REDIS_WARN_THRESHOLD", 3),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
