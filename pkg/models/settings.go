package models

// Default policy thresholds
const (
	DefaultMaxHoursVariation  = 40.0
	DefaultEquityThreshold    = 60.0
	DefaultMinRestHours       = 11.0
	DefaultMaxConsecutiveDays = 6
	DefaultScoreThreshold     = 70.0
)

// AlertSettings controls alert emission
type AlertSettings struct {
	// Enabled is a pointer so an omitted value keeps alerts on
	Enabled        *bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ScoreThreshold float64 `json:"score_threshold" yaml:"score_threshold"`
}

// ValidationAdminSettings are the policy thresholds supplied per evaluation
type ValidationAdminSettings struct {
	MaxHoursVariation  float64       `json:"max_hours_variation" yaml:"max_hours_variation"`
	EquityThreshold    float64       `json:"equity_threshold" yaml:"equity_threshold"`
	MinRestHours       float64       `json:"min_rest_hours" yaml:"min_rest_hours"`
	MaxConsecutiveDays int           `json:"max_consecutive_days" yaml:"max_consecutive_days"`
	AlertSettings      AlertSettings `json:"alert_settings" yaml:"alert_settings"`
}

// WithDefaults fills zero values with the defaults
func (s ValidationAdminSettings) WithDefaults() ValidationAdminSettings {
	if s.MaxHoursVariation <= 0 {
		s.MaxHoursVariation = DefaultMaxHoursVariation
	}
	if s.EquityThreshold <= 0 {
		s.EquityThreshold = DefaultEquityThreshold
	}
	if s.MinRestHours <= 0 {
		s.MinRestHours = DefaultMinRestHours
	}
	if s.MaxConsecutiveDays <= 0 {
		s.MaxConsecutiveDays = DefaultMaxConsecutiveDays
	}
	if s.AlertSettings.ScoreThreshold <= 0 {
		s.AlertSettings.ScoreThreshold = DefaultScoreThreshold
	}
	return s
}

// Merge overlays the non-zero fields of override on top of s
func (s ValidationAdminSettings) Merge(override ValidationAdminSettings) ValidationAdminSettings {
	if override.MaxHoursVariation > 0 {
		s.MaxHoursVariation = override.MaxHoursVariation
	}
	if override.EquityThreshold > 0 {
		s.EquityThreshold = override.EquityThreshold
	}
	if override.MinRestHours > 0 {
		s.MinRestHours = override.MinRestHours
	}
	if override.MaxConsecutiveDays > 0 {
		s.MaxConsecutiveDays = override.MaxConsecutiveDays
	}
	if override.AlertSettings.Enabled != nil {
		s.AlertSettings.Enabled = override.AlertSettings.Enabled
	}
	if override.AlertSettings.ScoreThreshold > 0 {
		s.AlertSettings.ScoreThreshold = override.AlertSettings.ScoreThreshold
	}
	return s
}

// AlertsEnabled reports whether alerts should be emitted
func (s ValidationAdminSettings) AlertsEnabled() bool {
	return s.AlertSettings.Enabled == nil || *s.AlertSettings.Enabled
}
