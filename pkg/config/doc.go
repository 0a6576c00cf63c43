// Package config loads typed configuration from the environment.
//
// Structs are populated with github.com/caarlos0/env/v11 using env and
// envDefault tags, so each package declares its own settings and loads
// them independently:
//
//	var cfg form.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Each type is parsed once and cached. LoadEnv reads .env files with
// github.com/joho/godotenv and invalidates the cache, which is how the
// command line tool applies -env-file. Without LoadEnv, the first Load
// tries ./.env. Variables already set in the process environment always
// take precedence over file values.
package config
