package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"memo-go/internal/game"
)

type Config struct {
	// Game
	Levels []int    `mapstructure:"level"`
	Recto  []string `mapstructure:"-"`
	Verso  string   `mapstructure:"verso"`

	// Storage
	Bdd string `mapstructure:"bdd"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	// Board shuffling, 0 picks a random seed
	Seed int64 `mapstructure:"SEED"`

	// AWS
	AWSRegion string `mapstructure:"AWS_REGION"`
}

// Load reads configuration.yml from the working directory or ./config, or the
// file at path when one is given.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("configuration")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables take precedence
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("SEED", 0)
	v.SetDefault("AWS_REGION", "us-east-1")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: error reading config file: %v", game.ErrConfig, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("%w: error unmarshaling config: %v", game.ErrConfig, err)
	}

	recto, err := symbolList(v.Get("recto"))
	if err != nil {
		return nil, err
	}
	config.Recto = recto

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// symbolList accepts recto either as a YAML sequence or as one string of
// single-character symbols.
func symbolList(raw any) ([]string, error) {
	switch val := raw.(type) {
	case nil:
		return nil, nil
	case string:
		out := make([]string, 0, len(val))
		for _, r := range val {
			out = append(out, string(r))
		}
		return out, nil
	case []string:
		return val, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: recto must be a list or a string, got %T", game.ErrConfig, raw)
	}
}

// Validate checks the required keys and the game settings they describe.
func (c *Config) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: level is required", game.ErrConfig)
	}
	if len(c.Recto) == 0 {
		return fmt.Errorf("%w: recto is required", game.ErrConfig)
	}
	if c.Verso == "" {
		return fmt.Errorf("%w: verso is required", game.ErrConfig)
	}
	if strings.TrimSpace(c.Bdd) == "" {
		return fmt.Errorf("%w: bdd is required", game.ErrConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return c.GameSettings().Validate()
}

// GameSettings converts the level table and symbols for the engine.
func (c *Config) GameSettings() game.Settings {
	alphabet := make([]game.Symbol, len(c.Recto))
	for i, s := range c.Recto {
		alphabet[i] = game.Symbol(s)
	}
	sizes := make([]int, len(c.Levels))
	copy(sizes, c.Levels)
	return game.Settings{
		LevelSizes: sizes,
		Alphabet:   alphabet,
		Hidden:     game.Symbol(c.Verso),
	}
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: LOG_LEVEL %q: %v", game.ErrConfig, c.LogLevel, err)
	}
	return lvl, nil
}
