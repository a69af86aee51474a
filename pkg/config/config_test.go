package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arnavshah/workload-governance-go/pkg/config"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const policyYAML = `
defaults:
  max_hours_variation: 30
  equity_threshold: 70
  alert_settings:
    enabled: false
`

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("POLICY_FILE", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, models.ValidationAdminSettings{}.WithDefaults(), cfg.PolicyDefaults)
}

func TestLoad_PolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(policyYAML), 0o600))
	t.Setenv("POLICY_FILE", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.PolicyDefaults.MaxHoursVariation)
	assert.Equal(t, 70.0, cfg.PolicyDefaults.EquityThreshold)
	assert.Equal(t, models.DefaultMinRestHours, cfg.PolicyDefaults.MinRestHours)
	assert.False(t, cfg.PolicyDefaults.AlertsEnabled())
}

func TestLoad_MissingPolicyFile(t *testing.T) {
	t.Setenv("POLICY_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestSettings_RequestOverridesPolicy(t *testing.T) {
	enabled := true
	cfg := &config.Config{PolicyDefaults: models.ValidationAdminSettings{MaxHoursVariation: 30}.WithDefaults()}

	assert.Equal(t, 30.0, cfg.Settings(nil).MaxHoursVariation)

	merged := cfg.Settings(&models.ValidationAdminSettings{
		EquityThreshold: 50,
		AlertSettings:   models.AlertSettings{Enabled: &enabled},
	})
	assert.Equal(t, 30.0, merged.MaxHoursVariation)
	assert.Equal(t, 50.0, merged.EquityThreshold)
	assert.True(t, merged.AlertsEnabled())
}
