package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv string `mapstructure:"app_env"`
	Port   string `mapstructure:"port"`

	JWTSecret   string        `mapstructure:"jwt_secret"`
	JWTTTL      time.Duration `mapstructure:"jwt_ttl"`
	CORSOrigins []string      `mapstructure:"cors_origins"`

	StorageDriver string `mapstructure:"storage_driver"` // postgres | memory
	DatabaseURL   string `mapstructure:"database_url"`

	R2Endpoint      string `mapstructure:"r2_endpoint"`
	R2AccessKey     string `mapstructure:"r2_access_key"`
	R2SecretKey     string `mapstructure:"r2_secret_key"`
	R2Bucket        string `mapstructure:"r2_bucket_name"`
	R2PublicBaseURL string `mapstructure:"r2_public_base_url"`

	LLMProvider  string        `mapstructure:"llm_provider"` // gemini | llama
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
	LlamaAPIKey  string        `mapstructure:"llama_api_key"`
	LlamaModel   string        `mapstructure:"llama_model"`
	LlamaAPIURL  string        `mapstructure:"llama_api_url"`
	LLMTimeout   time.Duration `mapstructure:"llm_timeout"`

	KafkaBrokers        string `mapstructure:"kafka_brokers"`
	KafkaAnalyticsTopic string `mapstructure:"kafka_analytics_topic"`

	MaxTables          int           `mapstructure:"max_tables"`
	WaiterCallCooldown time.Duration `mapstructure:"waiter_call_cooldown"`
}

var defaults = map[string]any{
	"app_env":               "development",
	"port":                  "8000",
	"jwt_secret":            "",
	"jwt_ttl":               "24h",
	"cors_origins":          "http://localhost:3000,http://localhost:5173",
	"storage_driver":        "postgres",
	"database_url":          "",
	"r2_endpoint":           "",
	"r2_access_key":         "",
	"r2_secret_key":         "",
	"r2_bucket_name":        "",
	"r2_public_base_url":    "",
	"llm_provider":          "gemini",
	"gemini_api_key":        "",
	"gemini_model":          "gemini-1.5-flash",
	"llama_api_key":         "",
	"llama_model":           "",
	"llama_api_url":         "",
	"llm_timeout":           "30s",
	"kafka_brokers":         "",
	"kafka_analytics_topic": "cardapio.cart-events",
	"max_tables":            200,
	"waiter_call_cooldown":  "2m",
}

// Load reads .env (outside production) and the process environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}))
	if err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.StorageDriver != "memory" && c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}
	if c.MaxTables <= 0 {
		return errors.New("MAX_TABLES must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) R2Enabled() bool {
	return c.R2Endpoint != "" && c.R2Bucket != ""
}

func (c *Config) KafkaBrokerList() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
