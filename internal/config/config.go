// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"errors"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Link     LinkConfig
	Webhook  WebhookConfig
	API      APIConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

// LinkConfig controls account-link token issuance and matching.
type LinkConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Secret        string        // HMAC key for token and identity hashing
	RateLimit     time.Duration // minimum gap between issued tokens per target
	TokenLifetime time.Duration // how long an issued token stays matchable
	BotUsername   string        // messaging bot handle used in spoken instructions
}

// WebhookConfig protects the voice-platform webhook endpoint.
type WebhookConfig struct {
	Secret string // shared secret expected in the ?token= query parameter
}

// APIConfig protects the messaging-bot API endpoints.
type APIConfig struct {
	Token string // expected value of the X-API-Token header
}

func NewFromCLI(cmd *cli.Command) *Config {
	return &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Link: LinkConfig{
			Secret:        cmd.String("link-secret"),
			RateLimit:     time.Duration(cmd.Int("link-rate-limit")) * time.Second,
			TokenLifetime: time.Duration(cmd.Int("link-token-lifetime")) * time.Minute,
			BotUsername:   cmd.String("bot-username"),
		},
		Webhook: WebhookConfig{
			Secret: cmd.String("webhook-secret"),
		},
		API: APIConfig{
			Token: cmd.String("api-token"),
		},
	}
}

// Validate checks that secrets the core cannot run without are present.
// A missing secret is fatal at startup, never discovered per-request.
func (c *Config) Validate() error {
	if c.Link.Secret == "" {
		return errors.New("config: link secret is required")
	}
	if c.Webhook.Secret == "" {
		return errors.New("config: webhook secret is required")
	}
	if c.API.Token == "" {
		return errors.New("config: API token is required")
	}
	return nil
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   1,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/app.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "link-secret",
			Usage:   "HMAC key for link token hashing (required)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LINK_SECRET"), toml.TOML("link.secret", configFile)),
		},
		&cli.IntFlag{
			Name:    "link-rate-limit",
			Value:   60,
			Usage:   "Minimum seconds between issued link tokens per target",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LINK_RATE_LIMIT"), toml.TOML("link.rate_limit", configFile)),
		},
		&cli.IntFlag{
			Name:    "link-token-lifetime",
			Value:   10,
			Usage:   "Link token lifetime in minutes",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LINK_TOKEN_LIFETIME"), toml.TOML("link.token_lifetime", configFile)),
		},
		&cli.StringFlag{
			Name:    "bot-username",
			Value:   "AliceBPBot",
			Usage:   "Messaging bot username mentioned in linking instructions",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BOT_USERNAME"), toml.TOML("link.bot_username", configFile)),
		},
		&cli.StringFlag{
			Name:    "webhook-secret",
			Usage:   "Shared secret for the voice webhook endpoint (required)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("WEBHOOK_SECRET"), toml.TOML("webhook.secret", configFile)),
		},
		&cli.StringFlag{
			Name:    "api-token",
			Usage:   "Token for the messaging-bot API endpoints (required)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("API_TOKEN"), toml.TOML("api.token", configFile)),
		},
	}
}
