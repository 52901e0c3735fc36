package config

import (
	"errors"
	"fmt"
	"os"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const defaultUpstreamAPIURL = "http://localhost:8080/api/v1"

type Config struct {
	port           string
	upstreamAPIURL string
	postgresHost   string
	dBPassword     string
	dBUsername     string
	sentryDSN      string
	env            environment
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) UpstreamAPIURL() string {
	return c.upstreamAPIURL
}

func (c *Config) PostgresHost() string {
	return c.postgresHost
}

func (c *Config) DBPassword() string {
	return c.dBPassword
}

func (c *Config) DBUsername() string {
	return c.dBUsername
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf("Config{env: %s, upstream: %s, ...}", string(c.env), c.upstreamAPIURL)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("COURSELIGHT_ENVIRONMENT")
	if !ok {
		return missingKey("COURSELIGHT_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: COURSELIGHT_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	upstreamAPIURL := os.Getenv("UPSTREAM_API_URL")
	postgresHost := os.Getenv("POSTGRES_HOST")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbUsername := os.Getenv("DB_USERNAME")
	sentryDSN := os.Getenv("SENTRY_DSN")

	if env == production || env == staging {
		if upstreamAPIURL == "" {
			return missingKey("UPSTREAM_API_URL")
		}
		if postgresHost == "" {
			return missingKey("POSTGRES_HOST")
		}
		if dbUsername == "" {
			return missingKey("DB_USERNAME")
		}
		if dbPassword == "" {
			return missingKey("DB_PASSWORD")
		}
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	if upstreamAPIURL == "" {
		upstreamAPIURL = defaultUpstreamAPIURL
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	return Config{
		port:           port,
		upstreamAPIURL: upstreamAPIURL,
		postgresHost:   postgresHost,
		dBPassword:     dbPassword,
		dBUsername:     dbUsername,
		sentryDSN:      sentryDSN,
		env:            env,
	}, nil
}
