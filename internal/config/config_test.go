// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func parseConfig(t *testing.T, args ...string) *Config {
	t.Helper()
	var cfg *Config
	cmd := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg = NewFromCLI(cmd)
			return nil
		},
	}
	err := cmd.Run(context.Background(), append([]string{"test"}, args...))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return cfg
}

func TestNewFromCLI_Defaults(t *testing.T) {
	cfg := parseConfig(t)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "./data/app.db", cfg.Database.DSN)
	assert.Equal(t, time.Minute, cfg.Link.RateLimit)
	assert.Equal(t, 10*time.Minute, cfg.Link.TokenLifetime)
	assert.Equal(t, "AliceBPBot", cfg.Link.BotUsername)
}

func TestNewFromCLI_Overrides(t *testing.T) {
	cfg := parseConfig(t,
		"--port", "9090",
		"--link-rate-limit", "120",
		"--link-token-lifetime", "5",
		"--link-secret", "s",
	)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Link.RateLimit)
	assert.Equal(t, 5*time.Minute, cfg.Link.TokenLifetime)
	assert.Equal(t, "s", cfg.Link.Secret)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Link:    LinkConfig{Secret: "a"},
		Webhook: WebhookConfig{Secret: "b"},
		API:     APIConfig{Token: "c"},
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingSecrets(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing link secret", Config{
			Webhook: WebhookConfig{Secret: "b"},
			API:     APIConfig{Token: "c"},
		}},
		{"missing webhook secret", Config{
			Link: LinkConfig{Secret: "a"},
			API:  APIConfig{Token: "c"},
		}},
		{"missing api token", Config{
			Link:    LinkConfig{Secret: "a"},
			Webhook: WebhookConfig{Secret: "b"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
