// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ChainSafe/dageth/internal/log"
	"github.com/ChainSafe/dageth/pkg/ethtrie"
	"github.com/go-playground/validator/v10"
	"github.com/naoina/toml"
)

// Config is the TOML configuration of the command.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Codec CodecConfig `toml:"codec"`
}

// LogConfig is the logging configuration.
type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,loglevel"`
}

// CodecConfig is the codec configuration.
type CodecConfig struct {
	// DefaultKind is the trie kind used when --kind is not set.
	DefaultKind string `toml:"default-kind" validate:"omitempty,triekind"`
}

// loadConfig decodes and validates the TOML configuration file.
func loadConfig(path string) (config Config, err error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return config, fmt.Errorf("opening configuration file: %w", err)
	}
	defer file.Close()

	err = toml.NewDecoder(file).Decode(&config)
	if err != nil {
		return config, fmt.Errorf("decoding configuration file: %w", err)
	}

	err = newValidator().Struct(config)
	if err != nil {
		return config, fmt.Errorf("validating configuration file: %w", err)
	}

	return config, nil
}

func newValidator() *validator.Validate {
	validate := validator.New()

	// Registering only fails for empty tags or nil functions.
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := parseLogLevelString(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("triekind", func(fl validator.FieldLevel) bool {
		_, err := ethtrie.DefaultTable().Parse(fl.Field().String())
		return err == nil
	})

	return validate
}

type stringKVStore interface {
	String(key string) (value string)
}

// getLogLevel obtains the log level in the following order:
// 1. Try to obtain it from the flag value corresponding to flagName.
// 2. Try to obtain it from the TOML value given, if step 1. failed.
// 3. Return the default value given if both previous steps failed.
func getLogLevel(flagsKVStore stringKVStore, flagName, tomlValue string, defaultLevel log.Level) (
	level log.Level, err error) {
	if flagValue := flagsKVStore.String(flagName); flagValue != "" {
		return parseLogLevelString(flagValue)
	}

	if tomlValue == "" {
		return defaultLevel, nil
	}

	return parseLogLevelString(tomlValue)
}

var ErrLogLevelIntegerOutOfRange = errors.New("log level integer can only be between 0 and 5 included")

// parseLogLevelString parses a level given as an integer or as a string.
func parseLogLevelString(logLevelString string) (logLevel log.Level, err error) {
	levelInt, err := strconv.Atoi(logLevelString)
	if err == nil { // level given as an integer
		if levelInt < 0 || levelInt > int(log.Critical) {
			return 0, fmt.Errorf("%w: log level given: %d", ErrLogLevelIntegerOutOfRange, levelInt)
		}
		return log.Level(levelInt), nil
	}

	logLevel, err = log.ParseLevel(logLevelString)
	if err != nil {
		return 0, fmt.Errorf("cannot parse log level string: %w", err)
	}

	return logLevel, nil
}
