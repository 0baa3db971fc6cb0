// Package config loads configuration in two shapes.
//
// Process settings come from the environment. Load parses a struct with
// caarlos0/env tags, loading a .env file through godotenv on first use, and
// caches the result per type:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
//
// Settings files are read verbatim. ReadFile scans KEY=VALUE lines without
// interpolation, Require reports the first missing key in a fixed order and
// Decode turns the map into a typed struct using the same env tags:
//
//	values, err := config.ReadFile(".env")
//	if err != nil { ... }                              // errors.Is(err, config.ErrFileNotFound)
//	if err := config.Require(values, "MAIL_HOST", "MAIL_PORT"); err != nil { ... }
//	settings, err := config.Decode[Settings](values)   // *config.InvalidValueError on bad ints
package config
