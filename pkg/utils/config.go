package utils

import (
	"os"
	"time"
)

type ServerConfig struct {
	Addr            string
	StoreBaseURL    string
	SpyBaseURL      string
	UpstreamTimeout time.Duration
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("GAMEHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	storeBase := os.Getenv("GAMEHUB_STORE_BASE_URL")
	if storeBase == "" {
		storeBase = "https://store.steampowered.com"
	}

	spyBase := os.Getenv("GAMEHUB_SPY_BASE_URL")
	if spyBase == "" {
		spyBase = "https://steamspy.com"
	}

	timeout := 12 * time.Second
	if raw := os.Getenv("GAMEHUB_UPSTREAM_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
		// if parse fails, fallback to 12s
	}

	return ServerConfig{
		Addr:            addr,
		StoreBaseURL:    storeBase,
		SpyBaseURL:      spyBase,
		UpstreamTimeout: timeout,
	}
}
