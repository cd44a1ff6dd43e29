// Package config resolves service configuration from an optional YAML file
// with environment-variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DatasetPath  string `yaml:"dataset_path"`
	SheetName    string `yaml:"sheet_name"`
	Port         string `yaml:"port"`
	PreviewLimit int    `yaml:"preview_limit"`
}

// Load reads CONFIG_PATH (or ./config.yaml when present) and applies env
// overrides: DATASET_PATH, SHEET_NAME, PORT, PREVIEW_LIMIT.
func Load() (Config, error) {
	cfg := Config{
		DatasetPath:  "SMS AND SID  HAZARD DATA.csv",
		Port:         "8080",
		PreviewLimit: 5,
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.DatasetPath = envOr("DATASET_PATH", cfg.DatasetPath)
	cfg.SheetName = envOr("SHEET_NAME", cfg.SheetName)
	cfg.Port = envOr("PORT", cfg.Port)
	if v := os.Getenv("PREVIEW_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("PREVIEW_LIMIT: %w", err)
		}
		cfg.PreviewLimit = n
	}
	if cfg.PreviewLimit <= 0 {
		cfg.PreviewLimit = 5
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
