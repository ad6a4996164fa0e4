package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SetDefaults installs the baseline configuration. Values can be overridden
// by a crambox.yaml in $HOME/.crambox or the working directory.
func SetDefaults() {
	viper.SetDefault("speech.type", "auto") // Auto-select best engine
	viper.SetDefault("speech.voice", "default")
	viper.SetDefault("speech.speed", 1.0)
	viper.SetDefault("speech.volume", 0.8)
	viper.SetDefault("speech.cache_path", filepath.Join(CacheDir(), "speech"))

	viper.SetDefault("render.style", "auto")
	viper.SetDefault("render.width", 100)

	viper.SetDefault("server.addr", ":8642")

	viper.SetDefault("packs.url", "")
	viper.SetDefault("packs.max_age_hours", 24)
}

// CacheDir returns where downloaded packs and synthesized audio live.
func CacheDir() string {
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "crambox")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".crambox", "cache")
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, "cache")
	}
	return "cache"
}
