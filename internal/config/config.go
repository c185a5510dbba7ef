// Package config loads tutor settings from defaults, an optional YAML file
// and CRANKY_* environment variables, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/imhonza/cranky-language-tutor/internal/learner"
)

// Config is the resolved tutor configuration.
type Config struct {
	Capacity          Capacity   `mapstructure:"capacity"`
	ReviewProbability float64    `mapstructure:"review_probability"`
	DefaultLanguage   string     `mapstructure:"default_language"`
	DefaultLevel      string     `mapstructure:"default_level"`
	BaseLanguage      string     `mapstructure:"base_language"`
	AllowedLearners   []string   `mapstructure:"allowed_learners"`
	Generation        Generation `mapstructure:"generation"`

	// File is the config file that was read, empty when none was.
	File string `mapstructure:"-"`
}

// Capacity bounds the active set. Refills top it up to Max once it drops
// below Min.
type Capacity struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// Generation tunes phrase generation.
type Generation struct {
	MaxWords      int     `mapstructure:"max_words"`
	RatePerMinute float64 `mapstructure:"rate_per_minute"`
}

const envPrefix = "CRANKY"

var defaults = map[string]any{
	"capacity.min":               29,
	"capacity.max":               30,
	"review_probability":         0.2,
	"default_language":           "Spanish",
	"default_level":              string(learner.DefaultLevel),
	"base_language":              "English",
	"allowed_learners":           []string{},
	"generation.max_words":       8,
	"generation.rate_per_minute": 6.0,
}

// Load reads configuration. An explicit path must exist; with an empty
// path the default location is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if p := DefaultPath(); fileExists(p) {
			path = p
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.File = path
	cfg.AllowedLearners = trimNames(cfg.AllowedLearners)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the scheduler cannot run with. Capacity needs
// 0 <= min < max.
func (c *Config) Validate() error {
	if c.Capacity.Min < 0 || c.Capacity.Max < 1 || c.Capacity.Min >= c.Capacity.Max {
		return errors.Errorf("invalid capacity: min %d, max %d", c.Capacity.Min, c.Capacity.Max)
	}
	if c.ReviewProbability < 0 || c.ReviewProbability > 1 {
		return errors.Errorf("review_probability must be within [0, 1], got %v", c.ReviewProbability)
	}
	if strings.TrimSpace(c.DefaultLanguage) == "" {
		return errors.New("default_language must not be blank")
	}
	if strings.TrimSpace(c.BaseLanguage) == "" {
		return errors.New("base_language must not be blank")
	}
	if _, err := learner.ParseLevel(c.DefaultLevel); err != nil {
		return errors.Wrap(err, "default_level")
	}
	if c.Generation.MaxWords < 0 {
		return errors.Errorf("generation.max_words must not be negative, got %d", c.Generation.MaxWords)
	}
	if c.Generation.RatePerMinute < 0 {
		return errors.Errorf("generation.rate_per_minute must not be negative, got %v", c.Generation.RatePerMinute)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/cranky/config.yaml, falling back
// to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cranky", "config.yaml")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func trimNames(names []string) []string {
	out := names[:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
