// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/waytiled/loadconfig.go
// Summary: Resolves the config file path and unmarshals it into
// config.Config via viper, then fills defaults and validates.
// Notes: Grounded on bnema-dumber/internal/infrastructure/config/loader.go's
// Manager (viper.New + SetConfigName/Type + AddConfigPath + AutomaticEnv),
// adapted from TOML to YAML and from a long-lived watched Manager to a
// one-shot load (config/fsnotify file-watching is out of scope here).

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"waytile/config"
)

func defaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "waytile"), nil
}

// loadConfig reads YAML from explicitPath (if set) or the default config
// directory, falling back to WithDefaults() alone when no file is present.
func loadConfig(explicitPath string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve default config directory: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WAYTILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
