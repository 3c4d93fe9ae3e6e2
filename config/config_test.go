/* config_test.go
 * Contains unit tests for config.go
 * Authors: Zachary Bower
 */

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("MONGO_PROD_URI", "mongodb://localhost:27017")
	t.Setenv("TOURNAMENT_ID", "ncaa-2025")
}

// region Load tests

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "madness_pool", cfg.Database.Name)
	assert.Equal(t, "ncaa-2025", cfg.Database.TournamentID)
	assert.Equal(t, 10*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 1.0, cfg.Discord.CommandRate)
	assert.Equal(t, 5, cfg.Discord.CommandBurst)
	assert.Empty(t, cfg.Discord.AdminIDs)
	assert.False(t, cfg.Server.Enabled)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 0, cfg.Scoring.Workers)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGO_DB_NAME", "pool_test")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("DISCORD_ADMIN_IDS", " 111, ,222 ")
	t.Setenv("COMMAND_RATE", "0.5")
	t.Setenv("COMMAND_BURST", "2")
	t.Setenv("HTTP_ENABLED", "yes")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ADMIN_JWT_SECRET", "shh")
	t.Setenv("SCORING_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pool_test", cfg.Database.Name)
	assert.Equal(t, 3*time.Second, cfg.Database.Timeout)
	assert.Equal(t, []string{"111", "222"}, cfg.Discord.AdminIDs)
	assert.Equal(t, 0.5, cfg.Discord.CommandRate)
	assert.Equal(t, 2, cfg.Discord.CommandBurst)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "shh", cfg.Server.JWTSecret)
	assert.Equal(t, 4, cfg.Scoring.Workers)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORE_TIMEOUT", "soon")
	t.Setenv("COMMAND_BURST", "many")
	t.Setenv("HTTP_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 5, cfg.Discord.CommandBurst)
	assert.False(t, cfg.Server.Enabled)
}

func TestLoad_MissingURI(t *testing.T) {
	t.Setenv("MONGO_PROD_URI", "")
	t.Setenv("TOURNAMENT_ID", "ncaa-2025")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGO_PROD_URI")
}

func TestLoad_MissingTournament(t *testing.T) {
	t.Setenv("MONGO_PROD_URI", "mongodb://localhost:27017")
	t.Setenv("TOURNAMENT_ID", "")

	_, err := Load()
	assert.ErrorContains(t, err, "TOURNAMENT_ID")
}

// endregion

// region Validate tests

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Name: "db", URI: "mongodb://x", TournamentID: "t", Timeout: time.Second},
		Discord:  DiscordConfig{CommandRate: 1, CommandBurst: 1},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty db name", func(c *Config) { c.Database.Name = "" }, "MONGO_DB_NAME"},
		{"zero timeout", func(c *Config) { c.Database.Timeout = 0 }, "timeout"},
		{"negative rate", func(c *Config) { c.Discord.CommandRate = -1 }, "command rate"},
		{"zero burst", func(c *Config) { c.Discord.CommandBurst = 0 }, "command burst"},
		{"negative workers", func(c *Config) { c.Scoring.Workers = -2 }, "workers"},
		{"limiter disabled", func(c *Config) { c.Discord.CommandRate = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.errMsg)
			}
		})
	}
}

// endregion

// region DiscordToken tests

func TestDiscordToken(t *testing.T) {
	c := validConfig()
	c.Discord.ProdToken = "prod"
	c.Discord.BetaToken = "beta"

	token, err := c.DiscordToken(false)
	require.NoError(t, err)
	assert.Equal(t, "prod", token)

	token, err = c.DiscordToken(true)
	require.NoError(t, err)
	assert.Equal(t, "beta", token)
}

func TestDiscordToken_Missing(t *testing.T) {
	c := validConfig()
	c.Discord.ProdToken = "prod"

	_, err := c.DiscordToken(true)
	assert.ErrorContains(t, err, "DISCORD_BETA_TOKEN")
}

// endregion
