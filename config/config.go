package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sevens-sim/sevens/game"
	"github.com/sevens-sim/sevens/solver"
)

const (
	ConfigPlayers       = "players"
	ConfigNoShuffle     = "no-shuffle"
	ConfigDeck          = "deck"
	ConfigSeed          = "seed"
	ConfigStrategy      = "strategy"
	ConfigForkThreshold = "fork-threshold"
	ConfigThreads       = "threads"
	ConfigOutput        = "output"
	ConfigLocale        = "locale"
	ConfigColor         = "color"
	ConfigDebug         = "debug"
	ConfigTrace         = "trace"
	ConfigCPUProfile    = "cpu-profile"
	ConfigFile          = "config"
)

var OutputFormats = []string{"text", "yaml"}

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config with every default set and no flags or
// environment applied.
func DefaultConfig() Config {
	c := Config{viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigPlayers, 6)
	c.SetDefault(ConfigNoShuffle, false)
	c.SetDefault(ConfigDeck, "")
	c.SetDefault(ConfigSeed, uint64(0))
	c.SetDefault(ConfigStrategy, game.NoConsequence.String())
	c.SetDefault(ConfigForkThreshold, solver.DefaultForkThreshold)
	c.SetDefault(ConfigThreads, runtime.NumCPU())
	c.SetDefault(ConfigOutput, "text")
	c.SetDefault(ConfigLocale, "en")
	c.SetDefault(ConfigColor, true)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigTrace, false)
	c.SetDefault(ConfigCPUProfile, "")
}

// Load reads settings from, in increasing priority: defaults, an optional
// config file, SEVENS_* environment variables and command-line flags.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("sevens", pflag.ContinueOnError)
	fs.IntP(ConfigPlayers, "p", 6, "number of players (2-52)")
	fs.BoolP(ConfigNoShuffle, "n", false, "don't shuffle the cards")
	fs.StringP(ConfigDeck, "k", "", "deal the deck encoded by this 52 character hash")
	fs.Uint64(ConfigSeed, 0, "shuffle with a seeded RNG (0 = random)")
	fs.StringP(ConfigStrategy, "s", game.NoConsequence.String(), "play strategy: no-consequence, preferred or dumb")
	fs.Int(ConfigForkThreshold, solver.DefaultForkThreshold, "search branch points in parallel until this many cards are played")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of threads")
	fs.StringP(ConfigOutput, "o", "text", "output format: text or yaml")
	fs.String(ConfigLocale, "en", "locale used to format counts")
	fs.Bool(ConfigColor, true, "colour card output")
	fs.BoolP(ConfigDebug, "d", false, "debug logging")
	fs.Bool(ConfigTrace, false, "trace every move of the search (very slow)")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigFile, "", "config file (yaml, json or toml)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("sevens")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return c.Validate()
}

// Validate checks the settings that can be checked without dealing.
func (c *Config) Validate() error {
	if p := c.GetInt(ConfigPlayers); p < game.MinPlayers || p > game.MaxPlayers {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrInvalidConfig, ConfigPlayers, game.MinPlayers, game.MaxPlayers, p)
	}
	if _, err := c.Strategy(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if out := c.GetString(ConfigOutput); !lo.Contains(OutputFormats, out) {
		return fmt.Errorf("%w: %s must be one of %v, got %q", ErrInvalidConfig, ConfigOutput, OutputFormats, out)
	}
	if c.GetInt(ConfigForkThreshold) < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, ConfigForkThreshold)
	}
	return nil
}

func (c *Config) Strategy() (game.Strategy, error) {
	return game.ParseStrategy(c.GetString(ConfigStrategy))
}

// SanitizedSettings returns the settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
