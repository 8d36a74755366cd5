// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cloud provides the components that talk to external services.
// This file contains general-purpose utility functions that support the cloud package.
// These helpers cover hierarchical configuration loading, environment overrides
// and file system checks.
//
// Functions:
//   - fileExists: A simple helper to check if a file exists.
//   - LoadConfig: Implements a hierarchical configuration loader. It first reads a base
//     configuration file and then overwrites values with a second, environment-specific
//     file (e.g., .env.local.toml, .env.test.toml). The environment is determined by
//     an environment variable.
//   - ApplyEnvironment: Overlays credentials, endpoints and the port taken from
//     the process environment on top of a loaded Config.
package cloud

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Cloud Constants define key strings used for configuration loading.
const (
	ConfigFileBaseName  = ".env"                     // The base name for configuration files (e.g., ".env.toml").
	ConfigFileExtension = ".toml"                    // The file extension for configuration files.
	ConfigSeparator     = "."                        // The separator used in config file names (e.g., ".env.local.toml").
	EnvConfigFilePrefix = "ANIMASTERY_CONFIG_PREFIX" // The environment variable for specifying the config directory.
	EnvConfigRuntime    = "ANIMASTERY_RUNTIME"       // The environment variable for specifying the runtime context (e.g., "local", "test", "prod").
	DefaultConfigPrefix = "configs"
	DefaultRuntime      = "local"
)

// Environment variables that override values read from the TOML files.
const (
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvYouTubeKey    = "YOUTUBE_API_KEY"
	EnvPort          = "PORT"
)

// fileExists checks if a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig provides a hierarchical configuration loading mechanism. It first loads a
// base configuration file and then merges or overwrites its values with an environment-specific
// configuration file. The paths and environment are determined by environment variables.
// Missing files are skipped; a file that exists but cannot be decoded is an error.
//
// Inputs:
//   - baseConfig: A pointer to the target configuration struct that will be populated
//     from the TOML files.
//
// Outputs:
//   - error: The first decode failure, wrapped with the offending file name.
func LoadConfig(baseConfig any) error {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if configurationFilePrefix == "" {
		configurationFilePrefix = DefaultConfigPrefix
	}
	if !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = DefaultRuntime
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	for _, fileName := range []string{baseConfigFileName, envConfigFileName} {
		if !fileExists(fileName) {
			slog.Debug("configuration file not found, skipping", "file", fileName)
			continue
		}
		if _, err := toml.DecodeFile(fileName, baseConfig); err != nil {
			return fmt.Errorf("failed to decode configuration file %s: %w", fileName, err)
		}
		slog.Debug("configuration file loaded", "file", fileName)
	}
	return nil
}

// ApplyEnvironment overwrites configuration values with those found in the
// process environment. Only variables that are set and non-empty take effect.
func ApplyEnvironment(config *Config) error {
	switch config.Remote.Provider {
	case ProviderGemini:
		if v := os.Getenv(EnvGeminiKey); v != "" {
			config.Remote.ApiKey = v
		}
	default:
		if v := os.Getenv(EnvOpenAIKey); v != "" {
			config.Remote.ApiKey = v
		}
		if v := os.Getenv(EnvOpenAIBaseURL); v != "" {
			config.Remote.BaseURL = v
		}
	}
	if v := os.Getenv(EnvYouTubeKey); v != "" {
		config.YouTube.ApiKey = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvPort, v, err)
		}
		config.Application.Port = port
	}
	return nil
}
