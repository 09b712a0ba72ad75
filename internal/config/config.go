// SPDX-License-Identifier: Apache-2.0

// Package config loads idmatch settings from a YAML file and the environment.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/goccy/go-yaml"
)

//go:embed schema.cue
var schemaSource string

// Config holds runtime settings. Field tags double as the CUE schema keys.
type Config struct {
	Policy      string `yaml:"policy" json:"policy"`
	Concurrency int    `yaml:"concurrency" json:"concurrency"`
	LogLevel    string `yaml:"log_level" json:"log_level"`
	HTTPAddr    string `yaml:"http_addr" json:"http_addr"`
	Output      string `yaml:"output" json:"output"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Policy:      "lenient",
		Concurrency: 4,
		LogLevel:    "info",
		HTTPAddr:    "",
		Output:      "yaml",
	}
}

// Load starts from Default, overlays the YAML file at path when path is not
// empty, then applies IDMATCH_* environment variables and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.Policy = getEnv("IDMATCH_POLICY", cfg.Policy)
	cfg.Concurrency = getEnvAsInt("IDMATCH_CONCURRENCY", cfg.Concurrency)
	cfg.LogLevel = getEnv("IDMATCH_LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPAddr = getEnv("IDMATCH_HTTP_ADDR", cfg.HTTPAddr)
	cfg.Output = getEnv("IDMATCH_OUTPUT", cfg.Output)

	cfg.Policy = strings.ToLower(cfg.Policy)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Output = strings.ToLower(cfg.Output)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings against the embedded CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	value := schema.Unify(ctx.Encode(c))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
