package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load populates the provided configuration struct from environment
// variables based on field tags.
//
// The default .env file is loaded once per process before the first parse;
// a missing .env file is not an error. Unlike per-type caching approaches,
// every call parses the current environment, so tests can mutate variables
// between loads.
//
// Example:
//
//	type ClientConfig struct {
//		Host    string `env:"API_HOST,required"`
//		Mock    bool   `env:"API_MOCK" envDefault:"false"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadFrom works like Load but reads the given .env files first. Values
// already present in the environment are not overridden.
func LoadFrom[T any](v *T, files ...string) error {
	if len(files) > 0 {
		_ = godotenv.Load(files...)
	}
	return Load(v)
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
