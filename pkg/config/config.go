// Package config loads gomotif settings from an optional YAML file, the
// environment and built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/virus-evolution/gomotif/pkg/motifset"
)

const (
	configName = ".gomotif"
	configType = "yaml"
	envPrefix  = "GOMOTIF"
)

// Defaults
const (
	DefaultMode      = motifset.ModeSubstitution
	DefaultMaxErrors = 1
	DefaultAlphabet  = "nucleotide"
	DefaultLogLevel  = "info"
)

var (
	ErrBadThreads  = errors.New("threads must be at least 1")
	ErrBadLogLevel = errors.New("unknown log level")
)

// Config holds every setting that can come from a file or the environment
type Config struct {
	Search Search `mapstructure:"search"`
	Log    Log    `mapstructure:"log"`
}

type Search struct {
	Mode        string `mapstructure:"mode"`
	Alphabet    string `mapstructure:"alphabet"`
	MaxErrors   int    `mapstructure:"max_errors"`
	BothStrands bool   `mapstructure:"both_strands"`
	Threads     int    `mapstructure:"threads"`
	// nil unless set, so that hits are only filtered on request
	MinScore *float64 `mapstructure:"min_score"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration. If path is empty, .gomotif.yaml is looked for in
// the working directory and then $HOME; a missing file is not an error.
func Load(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// no default, so AutomaticEnv alone would not surface it
	_ = v.BindEnv("search.min_score")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, v, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("search.mode", DefaultMode)
	v.SetDefault("search.alphabet", DefaultAlphabet)
	v.SetDefault("search.max_errors", DefaultMaxErrors)
	v.SetDefault("search.both_strands", false)
	v.SetDefault("search.threads", runtime.NumCPU())
	v.SetDefault("log.level", DefaultLogLevel)
}

// Validate checks values which cannot be checked by their consumers
func (c *Config) Validate() error {
	if !motifset.ValidMode(c.Search.Mode) {
		return fmt.Errorf("%w: %q", motifset.ErrBadMode, c.Search.Mode)
	}
	if c.Search.MaxErrors < 0 {
		return fmt.Errorf("search.max_errors must not be negative, got %d", c.Search.MaxErrors)
	}
	if c.Search.Threads < 1 {
		return fmt.Errorf("%w: got %d", ErrBadThreads, c.Search.Threads)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrBadLogLevel, c.Log.Level)
	}
	return nil
}
