package config

import (
	"os"
	"regexp"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Hue             HueConfig      `yaml:"hue"`
	Database        DatabaseConfig `yaml:"database"`
	Log             LogConfig      `yaml:"log"`
	UI              UIConfig       `yaml:"ui"`
	Cache           CacheConfig    `yaml:"cache"`
	ShutdownTimeout Duration       `yaml:"shutdown_timeout"` // General shutdown timeout for graceful stops
}

// HueConfig contains Hue bridge connection settings.
// Bridge and Username are normally discovered and paired interactively and
// persisted in the store; setting them here overrides the stored pairing.
type HueConfig struct {
	Bridge   string   `yaml:"bridge" envconfig:"HUE_BRIDGE"`
	Username string   `yaml:"username" envconfig:"HUE_USERNAME"`
	Timeout  Duration `yaml:"timeout"` // HTTP timeout for Hue API requests

	// Event stream reconnect settings
	MinRetryBackoff Duration `yaml:"min_retry_backoff"` // Minimum backoff between reconnects (default: 1s)
	MaxRetryBackoff Duration `yaml:"max_retry_backoff"` // Maximum backoff between reconnects (default: 2m)
	RetryMultiplier float64  `yaml:"retry_multiplier"`  // Backoff multiplier (default: 2.0)
	MaxReconnects   int      `yaml:"max_reconnects"`    // Max reconnect attempts, 0 = infinite (default: 0)
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `yaml:"path" envconfig:"HUEPANEL_DB"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level" envconfig:"HUEPANEL_LOG_LEVEL"`
	UseJSON bool   `yaml:"json"`
	Colors  bool   `yaml:"colors"`
	File    string `yaml:"file" envconfig:"HUEPANEL_LOG_FILE"` // Log destination; the panel owns the terminal
}

// UIConfig contains panel behaviour settings
type UIConfig struct {
	Locale         string   `yaml:"locale" envconfig:"HUEPANEL_LOCALE"`
	Debounce       Duration `yaml:"debounce"`        // Quiet period before a slider write is applied
	SceneSettle    Duration `yaml:"scene_settle"`    // Delay before reloading state after a scene recall
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`  // Bridge write rate limit
	BrightnessStep uint8    `yaml:"brightness_step"` // Brightness change per keypress
}

// CacheConfig contains catalog snapshot cache settings
type CacheConfig struct {
	TTL Duration `yaml:"ttl"` // How long a loaded catalog stays fresh
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Decode implements envconfig.Decoder for Duration
func (d *Duration) Decode(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the configuration file. A missing file is not an
// error: the panel is expected to work out of the box with defaults, with
// environment variables layered on top.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		// Expand environment variables
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Environment overrides the file. This is how secrets (the bridge
	// username) are passed in without landing in a config file.
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath()
	}

	// Hue defaults
	if c.Hue.Timeout == 0 {
		c.Hue.Timeout = Duration(30 * time.Second)
	}
	if c.Hue.MinRetryBackoff == 0 {
		c.Hue.MinRetryBackoff = Duration(1 * time.Second)
	}
	if c.Hue.MaxRetryBackoff == 0 {
		c.Hue.MaxRetryBackoff = Duration(2 * time.Minute)
	}
	if c.Hue.RetryMultiplier == 0 {
		c.Hue.RetryMultiplier = 2.0
	}
	// MaxReconnects defaults to 0 (infinite), no need to set

	// UI defaults
	if c.UI.Debounce == 0 {
		c.UI.Debounce = Duration(300 * time.Millisecond)
	}
	if c.UI.SceneSettle == 0 {
		c.UI.SceneSettle = Duration(10 * time.Second)
	}
	if c.UI.RateLimitRPS == 0 {
		c.UI.RateLimitRPS = 10.0
	}
	if c.UI.BrightnessStep == 0 {
		c.UI.BrightnessStep = 16
	}

	// Cache defaults
	if c.Cache.TTL == 0 {
		c.Cache.TTL = Duration(30 * time.Second)
	}

	// General shutdown timeout
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = Duration(5 * time.Second)
	}
}

func defaultDatabasePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/huepanel/huepanel.sqlite"
	}
	return "./huepanel.sqlite"
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
