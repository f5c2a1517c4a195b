package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything the core needs at startup. Values come from an
// optional teamboard.yml, overridden by environment variables (a .env file
// is loaded first when present).
type Config struct {
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	Namespace     string `yaml:"namespace"`
	LogPath       string `yaml:"logPath"`

	// VacationAllowance is the per-user yearly vacation day budget applied
	// when the profile carries no override.
	VacationAllowance int `yaml:"vacationAllowance"`
}

// Defaults mirror a local single-user setup.
func defaults() Config {
	return Config{
		RedisAddr:         "127.0.0.1:6379",
		Namespace:         "teamboard",
		VacationAllowance: 3,
	}
}

// Load reads teamboard.yml if file is non-empty and it exists, then applies
// env overrides. A missing file is not an error; a malformed one is.
func Load(file string) (Config, error) {
	// .env is optional
	_ = godotenv.Load(".env")

	cfg := defaults()

	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file %s: %w", file, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", file, err)
			}
		}
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid REDIS_DB value %q: %w", v, err)
		}
		cfg.RedisDB = db
	}
	if v := os.Getenv("TEAMBOARD_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}
	if v := os.Getenv("TEAMBOARD_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("VACATION_ALLOWANCE"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid VACATION_ALLOWANCE value %q: %w", v, err)
		}
		cfg.VacationAllowance = days
	}

	return cfg, nil
}
