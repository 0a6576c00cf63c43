package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	parsed = map[reflect.Type]any{}

	// dotenvRead is set once ./.env has been tried or LoadEnv has run.
	dotenvRead bool
)

// Load fills v from the environment using its env and envDefault tags. The
// first Load of a type parses; later calls copy the cached value until
// LoadEnv changes the environment.
//
// Before the first parse Load tries ./.env and ignores a missing file.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	mu.Lock()
	defer mu.Unlock()

	if !dotenvRead {
		dotenvRead = true
		_ = godotenv.Load()
	}

	key := reflect.TypeFor[T]()
	if cached, ok := parsed[key]; ok {
		*v = cached.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	parsed[key] = fresh
	*v = fresh
	return nil
}

// LoadEnv reads the given .env files, or ./.env when none is given. When
// several files set a variable the first wins, and variables already in the
// process environment are never overwritten.
//
// Loading a file drops every cached type so the next Load sees the new
// values, including types parsed before the file was read.
func LoadEnv(paths ...string) error {
	mu.Lock()
	defer mu.Unlock()

	dotenvRead = true
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	clear(parsed)
	return nil
}
