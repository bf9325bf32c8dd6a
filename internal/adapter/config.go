package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidConfig indicates a configuration value outside its valid range
var ErrInvalidConfig = errors.New("invalid configuration")

// Flag names bound into the configuration
const (
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
	FlagHomeURL  = "home-url"
)

// Config holds all application configuration
type Config struct {
	Feed    FeedConfig    `mapstructure:"feed"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FeedConfig holds catalog feed endpoints
type FeedConfig struct {
	HomeURL string        `mapstructure:"home_url"`
	SetURL  string        `mapstructure:"set_url"` // format string, %s is the set refId
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds image download settings
type CacheConfig struct {
	QueueCapacity int           `mapstructure:"queue_capacity"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"` // 0 leaves it to the transport
	MaxImageBytes int64         `mapstructure:"max_image_bytes"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Transition time.Duration `mapstructure:"transition"`
	FrameRate  int           `mapstructure:"frame_rate"`
	CellWidth  int           `mapstructure:"cell_width"`  // terminal columns per layout unit
	CellHeight int           `mapstructure:"cell_height"` // terminal rows per layout unit
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Feed: FeedConfig{
			HomeURL: "https://cd-static.bamgrid.com/dp-117731241344/home.json",
			SetURL:  "https://cd-static.bamgrid.com/dp-117731241344/sets/%s.json",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			QueueCapacity: 16 * 1024,
			MaxImageBytes: 8 << 20,
		},
		UI: UIConfig{
			Transition: 200 * time.Millisecond,
			FrameRate:  30,
			CellWidth:  12,
			CellHeight: 6,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// RegisterFlags adds the configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to a config file")
	fs.String(FlagLogLevel, "", "log level (DEBUG, INFO, WARN, ERROR)")
	fs.String(FlagHomeURL, "", "catalog home document URL")
}

// LoadConfig loads configuration from defaults, the config file, the
// environment and finally flags, each overriding the one before. flags may
// be nil.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	if path := flagString(flags, FlagConfig); path != "" {
		v.SetConfigFile(expandHome(path))
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. MARQUEE_FEED_HOME_URL
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range map[string]string{
		"logging.level": FlagLogLevel,
		"feed.home_url": FlagHomeURL,
	} {
		if flags == nil || flags.Lookup(name) == nil {
			continue
		}
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("feed.home_url", cfg.Feed.HomeURL)
	v.SetDefault("feed.set_url", cfg.Feed.SetURL)
	v.SetDefault("feed.timeout", cfg.Feed.Timeout)

	v.SetDefault("cache.queue_capacity", cfg.Cache.QueueCapacity)
	v.SetDefault("cache.fetch_timeout", cfg.Cache.FetchTimeout)
	v.SetDefault("cache.max_image_bytes", cfg.Cache.MaxImageBytes)

	v.SetDefault("ui.transition", cfg.UI.Transition)
	v.SetDefault("ui.frame_rate", cfg.UI.FrameRate)
	v.SetDefault("ui.cell_width", cfg.UI.CellWidth)
	v.SetDefault("ui.cell_height", cfg.UI.CellHeight)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks that values are usable
func (c *Config) Validate() error {
	switch {
	case c.Feed.HomeURL == "":
		return fmt.Errorf("%w: feed.home_url is empty", ErrInvalidConfig)
	case strings.Count(c.Feed.SetURL, "%s") != 1:
		return fmt.Errorf("%w: feed.set_url must contain one %%s", ErrInvalidConfig)
	case c.Cache.QueueCapacity <= 0:
		return fmt.Errorf("%w: cache.queue_capacity must be positive", ErrInvalidConfig)
	case c.UI.FrameRate <= 0:
		return fmt.Errorf("%w: ui.frame_rate must be positive", ErrInvalidConfig)
	case c.UI.CellWidth <= 0 || c.UI.CellHeight <= 0:
		return fmt.Errorf("%w: ui cell size must be positive", ErrInvalidConfig)
	case c.UI.Transition < 0:
		return fmt.Errorf("%w: ui.transition is negative", ErrInvalidConfig)
	}
	return nil
}

// FrameInterval returns the redraw period
func (c *UIConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

func flagString(flags *pflag.FlagSet, name string) string {
	if flags == nil || flags.Lookup(name) == nil {
		return ""
	}
	value, _ := flags.GetString(name)
	return value
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
