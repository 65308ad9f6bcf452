package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string `env:"GAIA_HTTP_ADDR" envDefault:":8080"`
	WSAddr   string `env:"GAIA_WS_ADDR" envDefault:":8081"`
	// CORSOrigin is sent as Access-Control-Allow-Origin by the http api.
	CORSOrigin string `env:"GAIA_CORS_ORIGIN" envDefault:"*"`

	// DBDSN is optional. Without it results are archived in memory.
	DBDSN             string        `env:"GAIA_DB_DSN"`
	DBMaxOpenConns    int           `env:"GAIA_DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns    int           `env:"GAIA_DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"GAIA_DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBLogLevel        string        `env:"GAIA_DB_LOG_LEVEL" envDefault:"warn"`
	DBAutoMigrate     bool          `env:"GAIA_DB_AUTO_MIGRATE" envDefault:"true"`

	TokenSecret string        `env:"GAIA_TOKEN_SECRET,required"`
	TokenIssuer string        `env:"GAIA_TOKEN_ISSUER" envDefault:"gaia-engine"`
	TokenTTL    time.Duration `env:"GAIA_TOKEN_TTL" envDefault:"24h"`

	SurfaceRejections bool          `env:"GAIA_SURFACE_REJECTIONS" envDefault:"false"`
	BotDelay          time.Duration `env:"GAIA_BOT_DELAY" envDefault:"600ms"`
	SessionIdleTTL    time.Duration `env:"GAIA_SESSION_IDLE_TTL" envDefault:"6h"`
	EvictInterval     time.Duration `env:"GAIA_EVICT_INTERVAL" envDefault:"5m"`
	PlanetsPerSector  int           `env:"GAIA_PLANETS_PER_SECTOR" envDefault:"6"`

	WSRate  float64 `env:"GAIA_WS_RATE" envDefault:"10"`
	WSBurst int     `env:"GAIA_WS_BURST" envDefault:"20"`

	RulesDir string `env:"GAIA_RULES_DIR" envDefault:"./rules"`

	LogLevel  string `env:"GAIA_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"GAIA_LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if len(c.TokenSecret) < 16 {
		errs = append(errs, errors.New("GAIA_TOKEN_SECRET must be at least 16 bytes"))
	}
	if c.BotDelay < 0 {
		errs = append(errs, errors.New("GAIA_BOT_DELAY must not be negative"))
	}
	if c.SessionIdleTTL <= 0 || c.EvictInterval <= 0 {
		errs = append(errs, errors.New("GAIA_SESSION_IDLE_TTL and GAIA_EVICT_INTERVAL must be positive"))
	}
	if c.WSRate <= 0 || c.WSBurst <= 0 {
		errs = append(errs, errors.New("GAIA_WS_RATE and GAIA_WS_BURST must be positive"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("GAIA_LOG_FORMAT %q must be json or console", c.LogFormat))
	}
	return errors.Join(errs...)
}
