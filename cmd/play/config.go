package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
)

const cfgFile = "kalaha/play.json"

type playConfig struct {
	BaseURL    string `json:"base_url" env:"KALAHA_BASE_URL"`
	PlayerName string `json:"player_name" env:"KALAHA_PLAYER_NAME"`
	BotDelayMs int    `json:"bot_delay_ms" env:"KALAHA_BOT_DELAY_MS"`
}

var defaultPlayConfig = playConfig{
	BaseURL:    "http://localhost:8080",
	PlayerName: "Player",
	BotDelayMs: 1500,
}

func (c playConfig) botDelay() time.Duration {
	return time.Duration(c.BotDelayMs) * time.Millisecond
}

// loadPlayConfig overlays the user's config file, if any, on the defaults
// and KALAHA_* environment variables on both.
func loadPlayConfig() (playConfig, error) {
	cfg := defaultPlayConfig

	if path, err := xdg.SearchConfigFile(cfgFile); err == nil {
		if cfg, err = readPlayConfig(path, cfg); err != nil {
			return cfg, err
		}
	}
	return applyEnv(cfg)
}

func applyEnv(cfg playConfig) (playConfig, error) {
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BotDelayMs < 0 {
		return cfg, fmt.Errorf("KALAHA_BOT_DELAY_MS must not be negative")
	}
	return cfg, nil
}

func readPlayConfig(path string, cfg playConfig) (playConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err = json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.BotDelayMs < 0 {
		return cfg, fmt.Errorf("%s: bot_delay_ms must not be negative", path)
	}
	return cfg, nil
}
