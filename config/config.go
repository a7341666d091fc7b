package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is read once at startup from the environment and an optional .env file.
type Config struct {
	Token        string `env:"DISCORD_TOKEN" validate:"required"`
	GuildID      string `env:"DISCORD_GUILD" validate:"required,numeric"`
	Status       string `env:"DISCORD_STATUS" envDefault:"online" validate:"oneof=online idle dnd invisible"`
	Activity     string `env:"DISCORD_ACTIVITY"`
	ActivityType string `env:"DISCORD_ACTIVITY_TYPE" envDefault:"game" validate:"oneof=game listening watching competing custom"`
	DatabasePath string `env:"DATABASE" envDefault:"embeds.db" validate:"required"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
}

var validate = validator.New()

// Load reads envFile into the process environment when it exists, then parses
// and validates the configuration.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	return Parse(env.Options{})
}

// Parse builds a Config from the process environment, or from opts.Environment
// when it is set.
func Parse(opts env.Options) (Config, error) {
	cfg := Config{}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.unquote()

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// unquote strips one pair of surrounding quotes that survive when values are
// exported from a shell rather than a .env file.
func (cfg *Config) unquote() {
	for _, value := range []*string{&cfg.Token, &cfg.GuildID, &cfg.Status, &cfg.Activity, &cfg.ActivityType, &cfg.DatabasePath, &cfg.LogLevel, &cfg.LogFormat} {
		*value = trimQuotes(*value)
	}
}

func trimQuotes(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// EnvFileExists reports whether path names a readable file.
func EnvFileExists(path string) bool {
	info, err := os.Stat(strings.TrimSpace(path))
	return err == nil && !info.IsDir()
}
