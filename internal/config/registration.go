package config

import "fmt"

// Resubmission modes.
const (
	// ResubmissionReset lets a rejected leader resubmit; the row returns to pending.
	ResubmissionReset = "reset"
	// ResubmissionDisabled refuses resubmission.
	ResubmissionDisabled = "disabled"
)

// RegistrationConfig holds registration policy configuration.
type RegistrationConfig struct {
	// ResubmissionMode controls what happens when a rejected leader resubmits.
	ResubmissionMode string
}

// LoadRegistrationConfigFromEnv loads registration policy from environment variables.
func LoadRegistrationConfigFromEnv() RegistrationConfig {
	return RegistrationConfig{
		ResubmissionMode: GetEnv("RESUBMISSION_MODE", ResubmissionReset),
	}
}

// Validate validates registration configuration.
func (c RegistrationConfig) Validate() error {
	switch c.ResubmissionMode {
	case ResubmissionReset, ResubmissionDisabled:
		return nil
	default:
		return fmt.Errorf("invalid RESUBMISSION_MODE: %s (must be: reset, disabled)", c.ResubmissionMode)
	}
}

// ResubmissionEnabled reports whether rejected applications may be resubmitted.
func (c RegistrationConfig) ResubmissionEnabled() bool {
	return c.ResubmissionMode == ResubmissionReset
}
