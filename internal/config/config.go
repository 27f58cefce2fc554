package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix namespaces environment overrides, e.g. BINGOMANCER_LOG_LEVEL
const EnvPrefix = "BINGOMANCER_"

// Config represents the application configuration
type Config struct {
	DefaultDeck  string         `toml:"default_deck" env:"DEFAULT_DECK"`
	LogLevel     string         `toml:"log_level" env:"LOG_LEVEL"`
	LogJSON      bool           `toml:"log_json" env:"LOG_JSON"`
	DatabasePath string         `toml:"database_path" env:"DATABASE_PATH"`
	Generate     GenerateConfig `toml:"generate" envPrefix:"GENERATE_"`
	Render       RenderConfig   `toml:"render" envPrefix:"RENDER_"`
	Cache        CacheConfig    `toml:"cache" envPrefix:"CACHE_"`
}

// GenerateConfig tunes board dealing
type GenerateConfig struct {
	MaxAttempts int `toml:"max_attempts" env:"MAX_ATTEMPTS"`
	GridSize    int `toml:"grid_size" env:"GRID_SIZE"`
}

// RenderConfig tunes PDF output
type RenderConfig struct {
	ImageDPI        int    `toml:"image_dpi" env:"IMAGE_DPI"`
	Concurrency     int    `toml:"concurrency" env:"CONCURRENCY"`
	BorderColor     string `toml:"border_color" env:"BORDER_COLOR"`
	LabelBackground string `toml:"label_background" env:"LABEL_BACKGROUND"`
	LabelColor      string `toml:"label_color" env:"LABEL_COLOR"`
}

// CacheConfig configures the image cache. An empty RedisURL keeps the cache in memory.
type CacheConfig struct {
	TTL      string `toml:"ttl" env:"TTL"`
	RedisURL string `toml:"redis_url" env:"REDIS_URL"`
}

// TTLDuration parses the cache TTL
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache ttl %q: %w", c.TTL, err)
	}
	return d, nil
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		DefaultDeck: "family",
		LogLevel:    "warn",
		Generate: GenerateConfig{
			MaxAttempts: 1000,
			GridSize:    16,
		},
		Render: RenderConfig{
			ImageDPI:        200,
			Concurrency:     4,
			BorderColor:     "#333333",
			LabelBackground: "#ffffff",
			LabelColor:      "#111111",
		},
		Cache: CacheConfig{
			TTL: "15m",
		},
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "bingo", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "bingomancer", "config.toml")
}

// GetCacheDir returns the directory for generated artefacts
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "bingomancer")
}

// GetDatabasePath returns the board database location
func (c *Config) GetDatabasePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(GetXDGDataHome(), "bingomancer", "boards.db")
}

// LoadConfig loads the config file and applies .env and environment overrides
func LoadConfig() (*Config, error) {
	// A missing .env file is the normal case
	_ = godotenv.Load()

	config, err := loadFile()
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	if _, err := config.Cache.TTLDuration(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFile reads the config file only, creating it with defaults if needed
func loadFile() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	// Keys missing from the file keep their defaults
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// GetDefaultDeck returns the default deck name from config
func GetDefaultDeck() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultDeck, nil
}

// SetDefaultDeck sets the default deck in the config file
func SetDefaultDeck(deckName string) error {
	// Environment overrides must not leak into the file
	config, err := loadFile()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName

	return writeConfig(config)
}
