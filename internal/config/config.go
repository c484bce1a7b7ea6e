package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"lunarcal/internal/calendar"
)

const (
	defaultListen       = "127.0.0.1:8080"
	defaultTimezone     = "Asia/Shanghai"
	defaultWeekStart    = "sunday"
	defaultRefreshCron  = "0 0 * * *"
	defaultUpcomingDays = 30
	defaultLogLevel     = "info"
	defaultFeedName     = "节日与节气"

	// MaxUpcomingDays bounds /api/upcoming windows.
	MaxUpcomingDays = 366
)

// ICSConfig controls the published iCalendar feed.
type ICSConfig struct {
	// Name is the calendar display name (X-WR-CALNAME).
	Name string `yaml:"name" json:"name"`
	// AnchorYear is the year of the first DTSTART of every yearly event.
	// Zero means the current year at feed build time.
	AnchorYear int `yaml:"anchor_year" json:"anchor_year"`
	// Imports lists local .ics files whose all-day events are merged into
	// /api/upcoming alongside the built-in observances.
	Imports []string `yaml:"imports,omitempty" json:"imports,omitempty"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone that decides what "today" is.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart controls the first grid column. Supported values:
	//   - "sunday" (default)
	//   - "monday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// GridPolicy is "fixed" (always 6 rows, default) or "compact".
	GridPolicy string `yaml:"grid_policy" json:"grid_policy"`

	// RefreshCron is the cron schedule of the day-rollover job that drops
	// cached grids. Evaluated in Timezone.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// UpcomingDays is the default window of /api/upcoming.
	UpcomingDays int `yaml:"upcoming_days" json:"upcoming_days"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	ICS ICSConfig `yaml:"ics" json:"ics"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       defaultListen,
		Timezone:     defaultTimezone,
		WeekStart:    defaultWeekStart,
		GridPolicy:   string(calendar.PolicyFixed),
		RefreshCron:  defaultRefreshCron,
		UpcomingDays: defaultUpcomingDays,
		LogLevel:     defaultLogLevel,
		ICS:          ICSConfig{Name: defaultFeedName},
		BasicAuth:    nil,
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave correctly. Unknown enum values fall back to the defaults.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}

	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		c.WeekStart = defaultWeekStart
	}

	c.GridPolicy = strings.ToLower(strings.TrimSpace(c.GridPolicy))
	switch calendar.Policy(c.GridPolicy) {
	case calendar.PolicyFixed, calendar.PolicyCompact:
	default:
		c.GridPolicy = string(calendar.PolicyFixed)
	}

	if c.RefreshCron == "" {
		c.RefreshCron = defaultRefreshCron
	}
	if c.UpcomingDays <= 0 {
		c.UpcomingDays = defaultUpcomingDays
	}
	if c.UpcomingDays > MaxUpcomingDays {
		c.UpcomingDays = MaxUpcomingDays
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.ICS.Name == "" {
		c.ICS.Name = defaultFeedName
	}
	if c.ICS.AnchorYear < 0 {
		c.ICS.AnchorYear = 0
	}
	var imports []string
	for _, p := range c.ICS.Imports {
		if p = strings.TrimSpace(p); p != "" {
			imports = append(imports, p)
		}
	}
	c.ICS.Imports = imports
}

// WeekStartDay returns the configured week start as a time.Weekday.
func (c *Config) WeekStartDay() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Policy returns the configured grid fill policy.
func (c *Config) Policy() calendar.Policy {
	return calendar.Policy(c.GridPolicy)
}

// Location resolves Timezone, returning an error for unknown zones.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     permissions (parent directory created as needed) and returned.
//   - Otherwise the YAML is decoded and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg alongside the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory (0700) if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".lunarcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience wrapper around the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
