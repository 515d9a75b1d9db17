package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	TokenSecret      string
	DuplicateWindow  time.Duration
	DefaultSurveyTTL time.Duration
	SweepInterval    time.Duration
	LogLevel         string
	LogFormat        string

	// IssueTokenFor, when set, makes the binary print an owner token and exit.
	IssueTokenFor string
	TokenTTL      time.Duration
}

const defaultTTL = 30 * 24 * time.Hour

// LoadEnvFile loads variables from the given .env files without overriding
// ones already set. Missing files are ignored.
func LoadEnvFile(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills anything unset from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-survey", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Owner token signing secret (prefer env)")

	fs.DurationVar(&cfg.DuplicateWindow, "duplicate-window", 0, "How long a fingerprint blocks resubmission")
	fs.DurationVar(&cfg.DefaultSurveyTTL, "survey-ttl", 0, "Survey lifetime when none is given")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", -1, "Expiry and retention sweep interval (0 disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	fs.StringVar(&cfg.IssueTokenFor, "issue-token", "", "Print an owner token for this owner id and exit")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 24*time.Hour, "Lifetime of tokens printed by -issue-token")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.IssueTokenFor == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("OWNER_TOKEN_SECRET")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("OWNER_TOKEN_SECRET required")
	}

	var err error
	if cfg.DuplicateWindow, err = durationEnv(cfg.DuplicateWindow, "DUPLICATE_WINDOW", defaultTTL); err != nil {
		return Config{}, err
	}
	if cfg.DefaultSurveyTTL, err = durationEnv(cfg.DefaultSurveyTTL, "DEFAULT_SURVEY_TTL", defaultTTL); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval < 0 {
		cfg.SweepInterval = 0
		if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d < 0 {
				return Config{}, errors.New("invalid SWEEP_INTERVAL env variable")
			}
			cfg.SweepInterval = d
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}

	return cfg, nil
}

// durationEnv returns flagVal if positive, else the env value, else def.
func durationEnv(flagVal time.Duration, env string, def time.Duration) (time.Duration, error) {
	if flagVal > 0 {
		return flagVal, nil
	}
	v := os.Getenv(env)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return d, nil
}
