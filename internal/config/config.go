package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Player forces a specific player binary instead of probing for one
	Player string

	// SearchLimit is the maximum number of search results to fetch
	SearchLimit int

	// DataDir holds the playlist store and play history
	DataDir string

	// YouTube API credentials
	YouTube YouTubeConfig
}

// YouTubeConfig holds YouTube Data API specific configuration
type YouTubeConfig struct {
	APIKey string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("player", "")
	v.SetDefault("search_limit", 10)
	v.SetDefault("data_dir", filepath.Join(xdg.DataHome, "croon"))

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables, e.g. CROON_YOUTUBE_API_KEY
	v.SetEnvPrefix("CROON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		Player:      v.GetString("player"),
		SearchLimit: v.GetInt("search_limit"),
		DataDir:     v.GetString("data_dir"),
		YouTube: YouTubeConfig{
			APIKey: v.GetString("youtube.api_key"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "croon")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("player", c.Player)
	v.Set("search_limit", c.SearchLimit)
	v.Set("data_dir", c.DataDir)
	v.Set("youtube.api_key", c.YouTube.APIKey)

	// Write to file
	return v.WriteConfigAs(configFile)
}
