package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	MySQL    MySQLConfig    `toml:"mysql"`
	Auth     AuthConfig     `toml:"auth"`
	LLM      LLMConfig      `toml:"llm"`
	WhatsApp WhatsAppConfig `toml:"whatsapp"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

// MySQLConfig carries the full DSN. There is deliberately no default: the
// service refuses to start without an explicit store location.
type MySQLConfig struct {
	DSN string `toml:"dsn"`
}

type AuthConfig struct {
	ExchangeBaseURL string `toml:"exchange_base_url"`
}

type LLMConfig struct {
	BaseURL         string  `toml:"base_url"`
	APIKey          string  `toml:"api_key"`
	Model           string  `toml:"model"`
	Temperature     float64 `toml:"temperature"`
	MaxTokens       int     `toml:"max_tokens"`
	MaxContextTurns int     `toml:"max_context_turns"`
}

// WhatsAppConfig holds Twilio credentials for the contact notification.
// All fields optional: leaving any empty disables notifications.
type WhatsAppConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"`
	ToNumber   string `toml:"to_number"`
}

type RabbitMQConfig struct {
	URL         string `toml:"url"`
	NotifyQueue string `toml:"notify_queue"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)

	if cfg.MySQL.DSN == "" {
		return nil, errors.New("mysql dsn is required (set MYSQL_DSN or [mysql] dsn)")
	}
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// WhatsAppConfigured reports whether every Twilio credential is present.
func (c *Config) WhatsAppConfigured() bool {
	w := c.WhatsApp
	return w.AccountSID != "" && w.AuthToken != "" && w.FromNumber != "" && w.ToNumber != ""
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "AtmosAether API",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8001,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			ExchangeBaseURL: "https://demobackend.emergentagent.com/auth/v1",
		},
		LLM: LLMConfig{
			BaseURL:         "https://api.openai.com/v1",
			Model:           "gpt-4o",
			Temperature:     0.7,
			MaxTokens:       1024,
			MaxContextTurns: 10,
		},
		RabbitMQ: RabbitMQConfig{
			NotifyQueue: "contact.notify",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.MySQL.DSN = getEnv("MYSQL_DSN", cfg.MySQL.DSN)

	cfg.Auth.ExchangeBaseURL = getEnv("AUTH_EXCHANGE_BASE_URL", cfg.Auth.ExchangeBaseURL)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Temperature = getEnvAsFloat("LLM_TEMPERATURE", cfg.LLM.Temperature)
	cfg.LLM.MaxTokens = getEnvAsInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)
	cfg.LLM.MaxContextTurns = getEnvAsInt("LLM_MAX_CONTEXT_TURNS", cfg.LLM.MaxContextTurns)

	cfg.WhatsApp.AccountSID = getEnv("TWILIO_ACCOUNT_SID", cfg.WhatsApp.AccountSID)
	cfg.WhatsApp.AuthToken = getEnv("TWILIO_AUTH_TOKEN", cfg.WhatsApp.AuthToken)
	cfg.WhatsApp.FromNumber = getEnv("TWILIO_WHATSAPP_FROM", cfg.WhatsApp.FromNumber)
	cfg.WhatsApp.ToNumber = getEnv("TWILIO_WHATSAPP_TO", cfg.WhatsApp.ToNumber)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.NotifyQueue = getEnv("RABBITMQ_NOTIFY_QUEUE", cfg.RabbitMQ.NotifyQueue)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
