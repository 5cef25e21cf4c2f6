package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"hoopstats/db"
	"hoopstats/nba"
	"hoopstats/utils"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

const CurrentSeason = "2024-25"

// DefaultSeasons are the seasons whose game logs are combined for a player.
var DefaultSeasons = []string{
	"2024-25",
	"2023-24",
}

type Config struct {
	Prod           bool
	Addr           string
	DatabaseDSN    string
	NBABaseURL     string
	Season         string
	Seasons        []string
	Simulations    int
	RosterRetries  int
	RetryDelay     time.Duration
	RosterRefresh  time.Duration
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	RequestsPerSec float64
}

// EnvFile is loaded into the environment, if it exists, before flags are
// parsed.
var EnvFile = ".env"

// LoadConfig reads EnvFile (if present), then flags. Environment variables
// supply flag defaults.
func LoadConfig(args []string) (*Config, error) {
	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("hoopstats", flag.ContinueOnError)
	fs.BoolVarP(&cfg.Prod, "prod", "p", envBool("HOOPSTATS_PROD", false), "designates production")
	fs.StringVar(&cfg.Addr, "addr", env("HOOPSTATS_ADDR", ":8080"), "http listen address")
	fs.StringVar(&cfg.DatabaseDSN, "db", env("HOOPSTATS_DB", db.MemoryDSN), "sqlite DSN for the game log cache")
	fs.StringVar(&cfg.NBABaseURL, "nba-base-url", env("NBA_API_BASE", nba.DefaultBaseURL), "stats.nba.com base URL")
	fs.StringVar(&cfg.Season, "season", env("HOOPSTATS_SEASON", CurrentSeason), "season used for the active roster")
	fs.StringSliceVar(&cfg.Seasons, "seasons", envList("HOOPSTATS_SEASONS", DefaultSeasons), "seasons whose game logs are combined (empty for entire career)")
	fs.IntVar(&cfg.Simulations, "simulations", envInt("HOOPSTATS_SIMULATIONS", 10000), "fair line resampling draws")
	fs.IntVar(&cfg.RosterRetries, "roster-retries", envInt("HOOPSTATS_ROSTER_RETRIES", 5), "roster fetch attempts")
	fs.DurationVar(&cfg.RetryDelay, "retry-delay", envDuration("HOOPSTATS_RETRY_DELAY", 2*time.Second), "delay between roster fetch attempts")
	fs.DurationVar(&cfg.RosterRefresh, "roster-refresh", envDuration("HOOPSTATS_ROSTER_REFRESH", 6*time.Hour), "background roster refresh interval (0 disables)")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", envDuration("HOOPSTATS_CACHE_TTL", 15*time.Minute), "game log cache lifetime (0 disables)")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", envDuration("HOOPSTATS_REQUEST_TIMEOUT", 30*time.Second), "stats.nba.com request timeout")
	fs.Float64Var(&cfg.RequestsPerSec, "rps", envFloat("HOOPSTATS_RPS", 2), "stats.nba.com requests per second (0 for unlimited)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if utils.IsInvalidSeason(c.Season) {
		return fmt.Errorf("invalid season provided: %s", c.Season)
	}
	seasons := make([]string, 0, len(c.Seasons))
	for _, s := range c.Seasons {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if utils.IsInvalidSeason(s) {
			return fmt.Errorf("invalid season provided: %s", s)
		}
		seasons = append(seasons, s)
	}
	c.Seasons = seasons
	if c.Simulations <= 0 {
		return fmt.Errorf("simulations must be positive, got %d", c.Simulations)
	}
	if c.RosterRetries <= 0 {
		return fmt.Errorf("roster-retries must be positive, got %d", c.RosterRetries)
	}
	return nil
}

// loadEnvFile ignores a missing file but not a malformed one.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	if strings.TrimSpace(v) == "" {
		return []string{}
	}
	return strings.Split(v, ",")
}

func envInt(key string, def int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}
