// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	Venue   VenueConfig   `toml:"venue"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// VenueConfig holds booking desk settings.
//
// PendingNames defaults to TBD only. Calendars that mark open seats with
// 待定 or ? list those names here as well.
type VenueConfig struct {
	Name           string   `toml:"name"`
	PendingNames   []string `toml:"pending_names" comment:"Staff placeholders that never conflict, e.g. [\"TBD\", \"待定\", \"?\"]"`
	MorningRange   string   `toml:"morning_range"`   // e.g., "08:00-13:00"
	AfternoonRange string   `toml:"afternoon_range"` // e.g., "13:30-18:30"
	EveningRange   string   `toml:"evening_range"`   // e.g., "19:00-03:00"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Venue: VenueConfig{
			Name:           "larpcal",
			PendingNames:   []string{booking.DefaultPendingName},
			MorningRange:   "08:00-13:00",
			AfternoonRange: "13:30-18:30",
			EveningRange:   "19:00-03:00",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "larpcal.db"
	}
	return filepath.Join(home, ".local", "share", "larpcal", "larpcal.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "larpcal", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
// Overrides may also come from a .env file next to the config file; the
// process environment wins over it.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	getenv, err := envLookup(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg, getenv)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// envLookup returns a getenv that falls back to the values of the dotenv
// file at path. A missing file is not an error.
func envLookup(path string) (func(string) string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.Getenv, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return values[key]
	}, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("LARPCAL_VENUE_NAME"); v != "" {
		cfg.Venue.Name = v
	}
	if v := getenv("LARPCAL_PENDING_NAMES"); v != "" {
		cfg.Venue.PendingNames = splitList(v)
	}
	if v := getenv("LARPCAL_MORNING_RANGE"); v != "" {
		cfg.Venue.MorningRange = v
	}
	if v := getenv("LARPCAL_AFTERNOON_RANGE"); v != "" {
		cfg.Venue.AfternoonRange = v
	}
	if v := getenv("LARPCAL_EVENING_RANGE"); v != "" {
		cfg.Venue.EveningRange = v
	}

	if v := getenv("LARPCAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := getenv("LARPCAL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

func splitList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	for _, slot := range booking.Slots() {
		field := string(slot) + "_range"
		r := c.DefaultRange(slot)
		iv, err := booking.ParseRange(r)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if iv.Minutes() == 0 {
			return fmt.Errorf("%s must not be empty, got %q", field, r)
		}
		if got := booking.ClassifyInterval(iv); got != slot {
			return fmt.Errorf("%s %q falls in the %s slot", field, r, got)
		}
	}

	if len(splitList(strings.Join(c.Venue.PendingNames, ","))) == 0 {
		return errors.New("at least one pending name must be configured")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.UI.Theme != "" && !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	return nil
}

// DefaultRange returns the prefilled time range for a slot.
func (c *Config) DefaultRange(slot booking.Slot) string {
	switch slot {
	case booking.SlotMorning:
		return c.Venue.MorningRange
	case booking.SlotEvening:
		return c.Venue.EveningRange
	default:
		return c.Venue.AfternoonRange
	}
}

// SlotRanges returns the prefilled time range of every slot.
func (c *Config) SlotRanges() map[booking.Slot]string {
	ranges := make(map[booking.Slot]string, 3)
	for _, slot := range booking.Slots() {
		ranges[slot] = c.DefaultRange(slot)
	}
	return ranges
}

// Detector builds a conflict detector using the configured pending names.
func (c *Config) Detector() *booking.Detector {
	return booking.NewDetector(c.Venue.PendingNames...)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
