package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"kart/internal/game"
)

type WindowConfig struct {
	Scale float64 `mapstructure:"scale"`
	VSync bool    `mapstructure:"vsync"`
}

type AudioConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	SFXVolume float64 `mapstructure:"sfxVolume"`
}

type ProfileConfig struct {
	Path string `mapstructure:"path"`
}

type RaceConfig struct {
	Seed          uint64        `mapstructure:"seed"`
	TotalLaps     int           `mapstructure:"totalLaps"`
	CollectRadius float64       `mapstructure:"collectRadius"`
	FinishDelay   time.Duration `mapstructure:"finishDelay"`
}

type TerminalConfig struct {
	HoldTimeout time.Duration `mapstructure:"holdTimeout"`
}

type Config struct {
	LogLevel string         `mapstructure:"logLevel"`
	Frontend string         `mapstructure:"frontend"`
	Window   WindowConfig   `mapstructure:"window"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Race     RaceConfig     `mapstructure:"race"`
	Terminal TerminalConfig `mapstructure:"terminal"`
}

// Frontends accepted by the race command.
const (
	FrontendDesktop  = "desktop"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("frontend", FrontendDesktop)

	viper.SetDefault("window.scale", 1.0)
	viper.SetDefault("window.vsync", true)

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.sfxVolume", 0.58)

	viper.SetDefault("profile.path", defaultProfilePath())

	viper.SetDefault("race.seed", 0)
	viper.SetDefault("race.totalLaps", game.DefaultTotalLaps)
	viper.SetDefault("race.collectRadius", game.CollectRadius)
	viper.SetDefault("race.finishDelay", game.FinishDelay)

	viper.SetDefault("terminal.holdTimeout", "180ms")
}

func defaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kart.db"
	}
	return filepath.Join(dir, "kart", "profile.db")
}

// Load reads defaults, an optional config file and KART_* environment
// overrides. An explicit path must exist; otherwise kart.yaml is looked up
// in the working directory and the user config directory.
func Load(path string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix("KART")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		viper.SetConfigName("kart")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "kart"))
		}
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the race cannot run with.
func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendDesktop, FrontendTerminal, FrontendHeadless:
	default:
		return fmt.Errorf("frontend %q: want desktop, terminal or headless", c.Frontend)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("window.scale must be positive, got %v", c.Window.Scale)
	}
	if c.Audio.SFXVolume < 0 || c.Audio.SFXVolume > 1 {
		return fmt.Errorf("audio.sfxVolume must be in [0,1], got %v", c.Audio.SFXVolume)
	}
	if c.Race.TotalLaps < 1 {
		return fmt.Errorf("race.totalLaps must be at least 1, got %d", c.Race.TotalLaps)
	}
	if c.Race.FinishDelay < game.FinishDelay {
		return fmt.Errorf("race.finishDelay must be at least %s, got %s", game.FinishDelay, c.Race.FinishDelay)
	}
	return nil
}
