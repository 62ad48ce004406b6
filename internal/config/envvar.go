package config

import "github.com/joho/godotenv"

// Environment variables read by reis. Any config key can also be set
// through the environment as REIS_<KEY>, with dots replaced by
// underscores (REIS_DATABASE_PATH, REIS_LOG_LEVEL, REIS_OUTPUT_COLOR).
const (
	EnvPrefix     = "REIS"
	EnvConfigFile = "REIS_CONFIG" // Path to config.yaml
)

// LoadDotEnv loads .env and .env.local from the working directory, if
// present. Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}
