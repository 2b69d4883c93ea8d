package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// RateLimitConfig configures the Redis token bucket placed in front of PNR
// lookups.  Each lookup costs one token; buckets are keyed per user and
// route by default so one agent cannot starve the others.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int           // bucket size
    RefillTokens   int           // tokens added per RefillInterval
    RefillInterval time.Duration
    TTL            time.Duration // idle buckets expire after this
    KeyStrategy    string        // ip | user | route | ip_route | user_route | anything else = ip+user+route
    Prefix         string
}

// LoadRateLimitConfig reads PNR_RATE_LIMIT_* and clamps the result to
// values the limiter script can work with.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("PNR_RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("PNR_RATE_LIMIT_CAPACITY", 5),
        RefillTokens:   envInt("PNR_RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("PNR_RATE_LIMIT_REFILL_INTERVAL", 6*time.Second),
        TTL:            envDur("PNR_RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    getenv("PNR_RATE_LIMIT_KEY_STRATEGY", "user_route"),
        Prefix:         getenv("PNR_RATE_LIMIT_PREFIX", "desk:rl"),
    }
    cfg.clamp()
    return cfg
}

// clamp keeps every bucket able to hold and regain at least one token, and
// keeps state around for at least five refill intervals.
func (c *RateLimitConfig) clamp() {
    c.Capacity = max(c.Capacity, 1)
    c.RefillTokens = max(c.RefillTokens, 1)
    if c.RefillInterval <= 0 {
        c.RefillInterval = time.Second
    }
    c.TTL = max(c.TTL, 5*c.RefillInterval)
}

// envBool accepts 1/0, true/false, yes/no and on/off in any case.
func envBool(k string, d bool) bool {
    switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    n, err := strconv.Atoi(os.Getenv(k))
    if err != nil {
        return d
    }
    return n
}

func envDur(k string, d time.Duration) time.Duration {
    dur, err := time.ParseDuration(os.Getenv(k))
    if err != nil {
        return d
    }
    return dur
}
