package config

import (
    "os"
    "strconv"
    "time"
)

// CacheConfig controls the Redis response cache applied to the read-only
// capacity and dashboard endpoints.  The TTL must stay at or below the
// dashboard refresh interval: the display status is derived from the wall
// clock on every read and must never be served staler than one refresh.
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads CACHE_* environment variables with defaults.
func LoadCacheConfig() CacheConfig {
    cfg := CacheConfig{
        Enabled: getenv("CACHE_ENABLED", "true") == "true",
        TTL:     parseDur(getenv("CACHE_TTL", "15s")),
        Prefix:  getenv("CACHE_PREFIX", "cache"),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 15 * time.Second
    }
    return cfg
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func atoi(s string, def int) int {
    if n, err := strconv.Atoi(s); err == nil {
        return n
    }
    return def
}

func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return 0
    }
    return d
}
