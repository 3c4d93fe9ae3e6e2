/* config.go
 * Loads the application configuration from the environment and an optional .env file
 * Authors: Zachary Bower
 */

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Discord  DiscordConfig
	Server   ServerConfig
	Scoring  ScoringConfig
}

// DatabaseConfig holds the mongo connection and the tournament the pool is running for
type DatabaseConfig struct {
	Name         string
	URI          string
	TournamentID string
	Timeout      time.Duration
}

// DiscordConfig holds the bot tokens, the admins allowed to enter results and the command rate limit
type DiscordConfig struct {
	ProdToken string
	BetaToken string
	AdminIDs  []string
	// CommandRate is commands per second per user. 0 disables the limiter
	CommandRate  float64
	CommandBurst int
}

// ServerConfig holds the http server configuration. An empty JWTSecret disables the admin endpoints
type ServerConfig struct {
	Enabled   bool
	Addr      string
	JWTSecret string
}

type ScoringConfig struct {
	Workers int
}

// Load loads configuration from environment variables and the .env file
// Preconditions: None. A missing .env file is not an error
// Postconditions: Returns the populated config, or an error if it fails validation
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Could not load .env file: %v", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Name:         getEnv("MONGO_DB_NAME", "madness_pool"),
			URI:          getEnv("MONGO_PROD_URI", ""),
			TournamentID: getEnv("TOURNAMENT_ID", ""),
			Timeout:      getDurationEnv("STORE_TIMEOUT", 10*time.Second),
		},
		Discord: DiscordConfig{
			ProdToken:    getEnv("DISCORD_PROD_TOKEN", ""),
			BetaToken:    getEnv("DISCORD_BETA_TOKEN", ""),
			AdminIDs:     getListEnv("DISCORD_ADMIN_IDS"),
			CommandRate:  getFloatEnv("COMMAND_RATE", 1),
			CommandBurst: getIntEnv("COMMAND_BURST", 5),
		},
		Server: ServerConfig{
			Enabled:   getBoolEnv("HTTP_ENABLED", false),
			Addr:      getEnv("HTTP_ADDR", ":8080"),
			JWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		},
		Scoring: ScoringConfig{
			Workers: getIntEnv("SCORING_WORKERS", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for missing or out of range values
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("MONGO_PROD_URI is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("MONGO_DB_NAME cannot be empty")
	}
	if c.Database.TournamentID == "" {
		return fmt.Errorf("TOURNAMENT_ID is required")
	}
	if c.Database.Timeout <= 0 {
		return fmt.Errorf("store timeout must be positive, got: %s", c.Database.Timeout)
	}
	if c.Discord.CommandRate < 0 {
		return fmt.Errorf("command rate cannot be negative, got: %g", c.Discord.CommandRate)
	}
	if c.Discord.CommandBurst < 1 {
		return fmt.Errorf("command burst must be at least 1, got: %d", c.Discord.CommandBurst)
	}
	if c.Scoring.Workers < 0 {
		return fmt.Errorf("scoring workers cannot be negative, got: %d", c.Scoring.Workers)
	}
	return nil
}

// DiscordToken returns the beta token when test is set, otherwise the production token
func (c *Config) DiscordToken(test bool) (string, error) {
	token := c.Discord.ProdToken
	name := "DISCORD_PROD_TOKEN"
	if test {
		token = c.Discord.BetaToken
		name = "DISCORD_BETA_TOKEN"
	}
	if token == "" {
		return "", fmt.Errorf("%s is not set", name)
	}
	return token, nil
}

// LogConfiguration logs the current configuration without secrets
func (c *Config) LogConfiguration() {
	log.Printf("Database: %s (tournament %s, timeout %s)", c.Database.Name, c.Database.TournamentID, c.Database.Timeout)
	log.Printf("Discord: %d admins, %g commands/s (burst %d)", len(c.Discord.AdminIDs), c.Discord.CommandRate, c.Discord.CommandBurst)
	log.Printf("HTTP: enabled=%t %s (admin api enabled: %t)", c.Server.Enabled, c.Server.Addr, c.Server.JWTSecret != "")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated variable, dropping empty entries
func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
