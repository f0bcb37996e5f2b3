package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const defaultAddr = "0.0.0.0:8080"

// Config holds the complete application configuration, loadable from
// environment variables (SKYSHOP_ prefix), flags, a .env file or YAML config
// files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL string `usage:"PostgreSQL URL to read the catalog from (SKYSHOP_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	SeedFile    string `usage:"Catalog seed document, optionally gzip compressed; the embedded catalog is used when empty" flag:"seed-file"`
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Health      HealthConfig
	Graceful    GracefulConfig
}

// RateLimitConfig controls the per-client token bucket.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Requests a client may burst; 0 disables limiting"`
	Window time.Duration `default:"1m"  usage:"Time to regain a full burst"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// HealthConfig controls probe thresholds.
type HealthConfig struct {
	MinCatalogEntries int `default:"1" usage:"Entries the catalog must hold to report ready" flag:"min-catalog-entries"`
	MaxGoroutines     int `default:"10000" usage:"Goroutine count above which the process reports not live" flag:"max-goroutines"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from the process environment and command
// line, then applies platform defaults.
func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) (*Config, error) {
	// A missing .env is fine: deployments set real environment variables.
	_ = godotenv.Load()

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix:         "SKYSHOP",
		Args:              args,
		AllowUnknownFlags: true,
		Files:             []string{"config.yaml", "/etc/skyshop/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if rl := cfg.RateLimit; rl.Max > 0 && rl.Window > 0 && rl.Window < time.Duration(rl.Max) {
		return nil, errors.Errorf("rate limit window %s is too short for %d requests", rl.Window, rl.Max)
	}
	if cfg.Health.MinCatalogEntries < 0 {
		return nil, errors.Errorf("min catalog entries must not be negative, got %d", cfg.Health.MinCatalogEntries)
	}
	return &cfg, nil
}

// applyPlatformDefaults maps the DATABASE_URL and PORT variables set by
// hosting platforms onto the SKYSHOP_ configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
}
