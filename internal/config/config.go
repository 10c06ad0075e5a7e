package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const placeholderAPIKey = "paste-your-key-here"

var ErrMissingAPIKey = errors.New("missing upstream API key")

type Config struct {
	Server      ServerConfig
	Log         LogConfig
	Upstream    UpstreamConfig
	OpenAI      OpenAIConfig
	RedisConfig RedisConfig
	CacheEnable bool `env:"CACHE_ENABLE"`
}

type ServerConfig struct {
	Port              string        `env:"PORT" envDefault:"3001" validate:"required,numeric"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	StaticIndexPath   string        `env:"STATIC_INDEX_PATH" envDefault:"index.html"`
	MaxImageBodyBytes int64         `env:"MAX_IMAGE_BODY_BYTES" envDefault:"10000000" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
}

// UpstreamConfig selects the model provider. The Anthropic fields are used
// when Provider is "anthropic".
type UpstreamConfig struct {
	Provider string        `env:"UPSTREAM_PROVIDER" envDefault:"anthropic" validate:"oneof=anthropic openai"`
	Timeout  time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"2m" validate:"gt=0"`
	APIKey   string        `env:"ANTHROPIC_API_KEY"`
	BaseURL  string        `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com" validate:"required,url"`
	Model    string        `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-20250514"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"http://localhost:8000/v1" validate:"required,url"`
	Model   string `env:"OPENAI_MODEL" envDefault:"default"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

// Load reads the optional dotenv file named by ENV_FILE (default ".env")
// and then the process environment. Real environment variables win.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Upstream.Provider == "anthropic" {
		key := c.Upstream.APIKey
		if key == "" || key == placeholderAPIKey {
			return fmt.Errorf("%w: set ANTHROPIC_API_KEY in the environment or in .env "+
				"(get one at https://console.anthropic.com/settings/keys)", ErrMissingAPIKey)
		}
	}
	return nil
}

// Model returns the model identifier of the selected provider.
func (c *Config) Model() string {
	if c.Upstream.Provider == "openai" {
		return c.OpenAI.Model
	}
	return c.Upstream.Model
}
