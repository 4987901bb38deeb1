/* config.go
 * Contains the Config struct that is built once at startup and passed to every component that needs it. Values come
 * from the environment (optionally loaded from a .env file) and an optional YAML season file
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nfl-playoff-picks/api/shared"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	StoreBackendMongo  = "mongo"
	StoreBackendMemory = "memory"

	DefaultESPNBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"

	// SeasonTypePostseason is the provider's season type code for the playoffs
	SeasonTypePostseason = 3
)

// SeasonConfig describes how the external source numbers the postseason. The provider skips week 4 (Pro Bowl),
// so the Super Bowl is week 5. This differs between seasons and providers, so it is configurable
type SeasonConfig struct {
	SeasonType int                  `yaml:"season_type"`
	Weeks      []int                `yaml:"weeks"`
	WeekRounds map[int]shared.Round `yaml:"week_rounds"`
}

// DefaultSeason returns the postseason layout used when no season file is given
func DefaultSeason() SeasonConfig {
	return SeasonConfig{
		SeasonType: SeasonTypePostseason,
		Weeks:      []int{1, 2, 3, 5},
		WeekRounds: map[int]shared.Round{
			1: shared.RoundWildCard,
			2: shared.RoundDivisional,
			3: shared.RoundConference,
			5: shared.RoundSuperBowl,
		},
	}
}

type Config struct {
	StoreBackend string
	MongoURI     string
	MongoDB      string

	ESPNBaseURL   string
	ESPNTimeout   time.Duration
	ESPNRateLimit float64 // requests per second

	SeasonYear   int
	Season       SeasonConfig
	SyncInterval time.Duration

	HTTPAddr     string
	CORSOrigins  []string
	DiscordToken string
	LogLevel     string
}

// Load reads the .env files (if present), then builds a Config from the environment.
// Preconditions: now is used to pick the default season year
// Postconditions: Returns a validated Config, or an error if a value is malformed or missing
func Load(now time.Time, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using process environment")
	}

	cfg := &Config{
		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMongo)),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "nfl_playoff_picks"),
		ESPNBaseURL:   getEnv("ESPN_BASE_URL", DefaultESPNBaseURL),
		SeasonYear:    getEnvAsInt("SEASON_YEAR", DefaultSeasonYear(now)),
		Season:        DefaultSeason(),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ESPNRateLimit: 2,
	}

	var err error
	if cfg.ESPNTimeout, err = getEnvAsDuration("ESPN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.SyncInterval, err = getEnvAsDuration("SYNC_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if v := os.Getenv("ESPN_RATE_LIMIT"); v != "" {
		cfg.ESPNRateLimit, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ESPN_RATE_LIMIT %q: %w", v, err)
		}
	}

	if path := os.Getenv("SEASON_CONFIG"); path != "" {
		season, err := LoadSeason(path)
		if err != nil {
			return nil, err
		}
		cfg.Season = season
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSeason reads a YAML season file. Fields left out of the file keep their default values
func LoadSeason(path string) (SeasonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeasonConfig{}, fmt.Errorf("failed to read season config: %w", err)
	}

	var file SeasonConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return SeasonConfig{}, fmt.Errorf("failed to parse season config: %w", err)
	}

	season := DefaultSeason()
	if file.SeasonType != 0 {
		season.SeasonType = file.SeasonType
	}
	if len(file.Weeks) > 0 {
		season.Weeks = file.Weeks
	}
	if len(file.WeekRounds) > 0 {
		season.WeekRounds = file.WeekRounds
	}
	return season, nil
}

// Validate checks that the config can be used to start the application
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_BACKEND is %q", StoreBackendMongo)
		}
	case StoreBackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.SeasonYear < 1966 {
		return fmt.Errorf("invalid SEASON_YEAR %d", c.SeasonYear)
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be positive")
	}
	if c.ESPNRateLimit <= 0 {
		return fmt.Errorf("ESPN_RATE_LIMIT must be positive")
	}
	if len(c.Season.Weeks) == 0 {
		return fmt.Errorf("season config has no weeks to poll")
	}
	for week, round := range c.Season.WeekRounds {
		if _, ok := shared.ParseRound(string(round)); !ok || round == shared.RoundOther {
			return fmt.Errorf("week %d maps to invalid round %q", week, round)
		}
	}
	return nil
}

// DefaultSeasonYear returns the year the NFL season containing now started in. Playoff games are played in
// January and February, which belong to the previous year's season
func DefaultSeasonYear(now time.Time) int {
	if now.Month() < time.August {
		return now.Year() - 1
	}
	return now.Year()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("ignoring non-numeric environment value")
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
