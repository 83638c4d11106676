package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/slotshare/internal/calendar"
)

// FeedConfig describes a single ICS subscription source.
type FeedConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Color string `yaml:"color,omitempty"`
}

// Config is the CLI-side configuration: where to reach the schedule service
// and which calendars feed the day builder.
type Config struct {
	// ServerURL is the base URL of the schedule service.
	ServerURL string `yaml:"server_url"`

	// Timezone is the IANA zone used for building days and tagging exports.
	Timezone string `yaml:"timezone"`

	// Feeds is the list of subscribed ICS sources.
	Feeds []FeedConfig `yaml:"feeds"`

	// ScheduleIDs tracks the schedules created from this machine so the
	// invitations view can poll them.
	ScheduleIDs []int64 `yaml:"schedule_ids,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "http://localhost:8080",
		Timezone:  "UTC",
		Feeds:     []FeedConfig{},
	}
}

// Normalize fills in missing values so partially filled configs behave.
func (c *Config) Normalize() {
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.Feeds == nil {
		c.Feeds = []FeedConfig{}
	}
}

// ICSFeeds converts the configured feeds for the calendar source.
func (c *Config) ICSFeeds() []calendar.ICSFeed {
	feeds := make([]calendar.ICSFeed, 0, len(c.Feeds))
	for _, feed := range c.Feeds {
		feeds = append(feeds, calendar.ICSFeed{
			ID:    feed.ID,
			Name:  feed.Name,
			URL:   feed.URL,
			Color: feed.Color,
		})
	}
	return feeds
}

// LoadConfig loads the YAML configuration at path. On first run the default
// config is written there and returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := SaveConfig(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// SaveConfig writes the configuration atomically with 0600 permissions.
func SaveConfig(path string, cfg *Config) error {
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

	tmp, err := os.CreateTemp(dir, ".slotshare-config-*.tmp")
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
