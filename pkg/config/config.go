// Package config loads runtime configuration from the environment, .env files and the policy file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup
type Config struct {
	Port           string
	DatabaseURL    string
	DataPath       string
	JWTSecret      string
	MasterSecret   string
	AdminUsername  string
	AdminPassword  string
	GinMode        string
	CORSOrigins    []string
	PolicyFile     string
	PolicyDefaults models.ValidationAdminSettings
}

// Policy is the document stored in POLICY_FILE
type Policy struct {
	Defaults models.ValidationAdminSettings `yaml:"defaults"`
}

// LoadEnv loads the first .env found in the working directory or its parents
func LoadEnv() {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads the configuration from the environment. Call LoadEnv first to pick up .env files.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataPath:      getEnv("DATA_PATH", "workload.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MasterSecret:  os.Getenv("API_MASTER_SECRET"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		GinMode:       os.Getenv("GIN_MODE"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		PolicyFile:    os.Getenv("POLICY_FILE"),
	}

	cfg.PolicyDefaults = models.ValidationAdminSettings{}.WithDefaults()
	if cfg.PolicyFile != "" {
		policy, err := LoadPolicy(cfg.PolicyFile)
		if err != nil {
			return nil, err
		}
		cfg.PolicyDefaults = policy.Defaults.WithDefaults()
	}

	return cfg, nil
}

// LoadPolicy parses a YAML policy file
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return &policy, nil
}

// Settings overlays request-provided settings on top of the policy defaults
func (c *Config) Settings(override *models.ValidationAdminSettings) models.ValidationAdminSettings {
	if override == nil {
		return c.PolicyDefaults
	}
	return c.PolicyDefaults.Merge(*override)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
