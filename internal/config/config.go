// internal/config/config.go
//
// Runtime configuration.
// Load order (later wins):
//   1. Built-in defaults.
//   2. `.env` in the working directory (godotenv; never overrides real env vars).
//   3. YAML file named by CONFIG_FILE, if set.
//   4. Environment variables.
//
// Environment variables:
//   WORD_LENGTH, DATA_DIR, MASK, CACHE_LOAD, CACHE_SAVE, WORKERS, PORT, LOG_LEVEL,
//   DB_PATH, MAX_STEPS, TOP_N, MIN_SECRET_FREQUENCY, DAILY_SALT, JWT_SECRET,
//   JWT_EXPIRES_DAYS, ADMIN_PASSWORD_HASH

package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle-solver/internal/pattern"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config holds every tunable of the solver binaries.
type Config struct {
	WordLength         int     `yaml:"word_length"`
	DataDir            string  `yaml:"data_dir"`
	Mask               string  `yaml:"mask"`
	LoadCache          bool    `yaml:"cache_load"`
	SaveCache          bool    `yaml:"cache_save"`
	Workers            int     `yaml:"workers"`
	Port               string  `yaml:"port"`
	LogLevel           string  `yaml:"log_level"`
	DBPath             string  `yaml:"db_path"`
	MaxSteps           int     `yaml:"max_steps"`
	TopN               int     `yaml:"top_n"`
	MinSecretFrequency float64 `yaml:"min_secret_frequency"`
	DailySalt          string  `yaml:"daily_salt"`
	JWTSecret          string  `yaml:"jwt_secret"`
	JWTExpiresDays     int     `yaml:"jwt_expires_days"`
	AdminPasswordHash  string  `yaml:"admin_password_hash"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WordLength:         5,
		DataDir:            "data",
		LoadCache:          true,
		SaveCache:          true,
		Workers:            runtime.NumCPU(),
		Port:               "5175",
		LogLevel:           "info",
		DBPath:             "data/solver.db",
		MaxSteps:           20,
		TopN:               10,
		MinSecretFrequency: 10,
		DailySalt:          "local_dev_salt",
		JWTExpiresDays:     14,
	}
}

// Load builds the configuration from defaults, .env, CONFIG_FILE and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	var errs []error
	envInt("WORD_LENGTH", &c.WordLength, &errs)
	envString("DATA_DIR", &c.DataDir)
	envString("MASK", &c.Mask)
	envBool("CACHE_LOAD", &c.LoadCache, &errs)
	envBool("CACHE_SAVE", &c.SaveCache, &errs)
	envInt("WORKERS", &c.Workers, &errs)
	envString("PORT", &c.Port)
	envString("LOG_LEVEL", &c.LogLevel)
	envString("DB_PATH", &c.DBPath)
	envInt("MAX_STEPS", &c.MaxSteps, &errs)
	envInt("TOP_N", &c.TopN, &errs)
	envFloat("MIN_SECRET_FREQUENCY", &c.MinSecretFrequency, &errs)
	envString("DAILY_SALT", &c.DailySalt)
	envString("JWT_SECRET", &c.JWTSecret)
	envInt("JWT_EXPIRES_DAYS", &c.JWTExpiresDays, &errs)
	envString("ADMIN_PASSWORD_HASH", &c.AdminPasswordHash)
	return errors.Join(errs...)
}

// Validate rejects values the solver cannot run with.
func (c Config) Validate() error {
	if !words.ValidLength(c.WordLength) {
		return fmt.Errorf("config: word length %d outside 1..%d", c.WordLength, words.MaxLength)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be >= 1, got %d", c.Workers)
	}
	if c.TopN < 1 {
		return fmt.Errorf("config: top_n must be >= 1, got %d", c.TopN)
	}
	return nil
}

// WordsPath is the dictionary file for the configured length.
func (c Config) WordsPath() string { return words.Path(c.DataDir, c.WordLength) }

// CachePath is the pattern cache file for the configured length.
func (c Config) CachePath() string { return pattern.CachePath(c.DataDir, c.WordLength) }

// JWTTTL is the token lifetime.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

func envString(k string, dst *string) {
	if v := os.Getenv(k); v != "" {
		*dst = v
	}
}

func envInt(k string, dst *int, errs *[]error) {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("config: %s: %w", k, err))
			return
		}
		*dst = n
	}
}

func envFloat(k string, dst *float64, errs *[]error) {
	if v := os.Getenv(k); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("config: %s: %w", k, err))
			return
		}
		*dst = f
	}
}

func envBool(k string, dst *bool, errs *[]error) {
	if v := os.Getenv(k); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("config: %s: %w", k, err))
			return
		}
		*dst = b
	}
}
