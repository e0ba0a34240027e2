package config

import (
	passwordhasher "authgate/internal/implementations/password_hasher"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinSecretLength = 32
	defaultEnvFile  = ".env"
)

// Config is the configuration of the HTTP API.
type Config struct {
	IsTestMode     bool     `env:"TEST_MODE"`
	Port           int      `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,required,notEmpty" envSeparator:","`
	CookieSecure   bool     `env:"COOKIE_SECURE" envDefault:"true"`

	SessionSecret    string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTokenTTL  time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"720h"`
	RestoreSecret    string        `env:"RESTORE_SECRET,required,notEmpty"`
	RestoreTokenTTL  time.Duration `env:"RESTORE_TOKEN_TTL" envDefault:"1h"`
	BcryptHasherCost int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitMQ      RabbitMQ
}

type RabbitMQ struct {
	URL              string `env:"RABBITMQ_URL,required"`
	RestoreLinkQueue string `env:"RABBITMQ_RESTORE_LINK_QUEUE" envDefault:"restore-links"`
}

type AWS struct {
	Region              string `env:"AWS_REGION,required"`
	AccessKey           string `env:"AWS_ACCESS_KEY,required"`
	SecretKey           string `env:"AWS_SECRET_KEY,required"`
	EmailSender         string `env:"AWS_EMAIL_SENDER,required"`
	RestoreLinkTemplate string `env:"AWS_EMAIL_RESTORE_LINK_TEMPLATE" envDefault:"restore-link"`
}

// MailerConfig is the configuration of the process delivering restore links.
type MailerConfig struct {
	IsTestMode         bool    `env:"TEST_MODE"`
	RestoreLinkBaseURL url.URL `env:"RESTORE_LINK_BASE_URL,required"`
	RabbitMQ           RabbitMQ
	AWS                AWS
}

func Load() (*Config, error) {
	loadEnvFile()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadMailer() (*MailerConfig, error) {
	loadEnvFile()
	cfg := &MailerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.RestoreLinkBaseURL.Scheme == "" || cfg.RestoreLinkBaseURL.Host == "" {
		return nil, errors.New("RESTORE_LINK_BASE_URL must be an absolute URL")
	}
	return cfg, nil
}

func LoadAWS() (*AWS, error) {
	loadEnvFile()
	cfg := &AWS{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes long", MinSecretLength)
	}
	if len(c.RestoreSecret) < MinSecretLength {
		return fmt.Errorf("RESTORE_SECRET must be at least %d bytes long", MinSecretLength)
	}
	if c.SessionSecret == c.RestoreSecret {
		return errors.New("SESSION_SECRET and RESTORE_SECRET must differ")
	}
	if c.BcryptHasherCost < bcrypt.MinCost || c.BcryptHasherCost > passwordhasher.MaxCost {
		return fmt.Errorf("BCRYPT_HASHER_COST must be in [%d, %d]", bcrypt.MinCost, passwordhasher.MaxCost)
	}
	// Credentialed CORS does not accept wildcard origins.
	if len(c.AllowedOrigins) == 0 {
		return errors.New("ALLOWED_ORIGINS must list at least one origin")
	}
	for _, origin := range c.AllowedOrigins {
		if strings.Contains(origin, "*") {
			return fmt.Errorf("ALLOWED_ORIGINS must not contain wildcards, got %q", origin)
		}
	}
	if c.SessionTokenTTL <= 0 || c.RestoreTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	return nil
}

// loadEnvFile fills the environment from .env when the file exists.
// Variables that are already set win.
func loadEnvFile() {
	_ = godotenv.Load(defaultEnvFile)
}
