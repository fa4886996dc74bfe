package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays configuration from BIOPORTAL_* environment variables
// (see the env tags on Config).
func parseEnv(config *Config) {
	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}
