package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultFeedURL is the vendor POS media feed the proxy was built for.
const DefaultFeedURL = "https://my.internetticketing.com/taposadmin/parhig/pos_feed/?type=MEDIA2"

type Config struct {
	App       AppConfig
	Feed      FeedConfig
	Static    StaticConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name            string        `validate:"required"`
	Port            string        `validate:"required,numeric"`
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// FeedConfig describes the upstream XML feed.
//
// InsecureSkipVerify disables certificate validation for the upstream call.
// The vendor endpoint is outside our control and has served invalid
// certificates, so the default is true; set FEED_INSECURE_SKIP_VERIFY=false
// once the vendor fixes it.
type FeedConfig struct {
	URL                string        `validate:"required,url"`
	Timeout            time.Duration `validate:"gt=0"`
	InsecureSkipVerify bool
	MaxBodyBytes       int64 `validate:"gt=0"`
	UserAgent          string
	BreakerEnabled     bool
}

type StaticConfig struct {
	Root string `validate:"required"`
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig limits requests per client IP. Requests <= 0 disables it.
type RateLimitConfig struct {
	Requests int           `validate:"gte=0"`
	Window   time.Duration `validate:"gt=0"`
}

type MetricsConfig struct {
	Enabled bool
	Path    string `validate:"required,startswith=/"`
}

// LoadConfig reads .env (optional) and the process environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom is LoadConfig with an explicit env file path. A missing file
// is not an error: the environment and defaults still apply.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "cinema-listing")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("FEED_URL", DefaultFeedURL)
	v.SetDefault("FEED_TIMEOUT", "10s")
	v.SetDefault("FEED_INSECURE_SKIP_VERIFY", true)
	v.SetDefault("FEED_MAX_BODY_BYTES", 16<<20)
	v.SetDefault("FEED_USER_AGENT", "cinema-listing/1.0")
	v.SetDefault("FEED_BREAKER_ENABLED", false)
	v.SetDefault("STATIC_ROOT", ".")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_REQUESTS", 120)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Feed: FeedConfig{
			URL:                v.GetString("FEED_URL"),
			Timeout:            v.GetDuration("FEED_TIMEOUT"),
			InsecureSkipVerify: v.GetBool("FEED_INSECURE_SKIP_VERIFY"),
			MaxBodyBytes:       v.GetInt64("FEED_MAX_BODY_BYTES"),
			UserAgent:          v.GetString("FEED_USER_AGENT"),
			BreakerEnabled:     v.GetBool("FEED_BREAKER_ENABLED"),
		},
		Static: StaticConfig{
			Root: v.GetString("STATIC_ROOT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
	}

	if errs := ValidateStruct(config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", FormatValidationErrors(errs))
	}

	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
