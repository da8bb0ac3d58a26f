// Package config holds the runtime settings for the backend.
//
// Settings are loaded from the environment once in main and threaded
// explicitly into the engines that need them. There is no ambient global
// configuration.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// AggregatorConfig configures the bank-data aggregator client.
type AggregatorConfig struct {
	ClientID    string        `envconfig:"CLIENT_ID"`
	Secret      string        `envconfig:"SECRET"`
	BaseURL     string        `envconfig:"BASE_URL" default:"https://sandbox.plaid.com"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
}

// AssistantConfig configures the AI assistant session.
type AssistantConfig struct {
	Model       string `envconfig:"MODEL" default:"gemini-2.0-flash"`
	MaxTurns    int    `envconfig:"MAX_TURNS" default:"20"`
	ContextSize int    `envconfig:"CONTEXT_TRANSACTIONS" default:"20"`
}

// Settings is the complete runtime configuration.
type Settings struct {
	DBPath           string   `envconfig:"DB_PATH" default:"data/ledger.db"`
	DataSource       string   `envconfig:"DATA_SOURCE" default:"demo"` // "demo" or "live"
	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS"`

	Aggregator AggregatorConfig `envconfig:"AGGREGATOR"`
	Assistant  AssistantConfig  `envconfig:"ASSISTANT"`
}

// Load reads the settings from the environment. A .env file is honored
// when present so that local runs do not need exported variables.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment")
	}

	var settings Settings
	if err := envconfig.Process("", &settings); err != nil {
		return Settings{}, err
	}

	return settings, nil
}
