package config

import "fmt"

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// Auth holds identity and admin allow-list configuration.
	Auth AuthConfig
	// Mail holds SMTP configuration.
	Mail MailConfig
	// Storage holds payment proof storage configuration.
	Storage StorageConfig
	// Registration holds registration policy.
	Registration RegistrationConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:       LoadServerConfigFromEnv(),
		Logger:       LoadLoggerConfigFromEnv(),
		Auth:         LoadAuthConfigFromEnv(),
		Mail:         LoadMailConfigFromEnv(),
		Storage:      LoadStorageConfigFromEnv(),
		Registration: LoadRegistrationConfigFromEnv(),
		GinMode:      GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := c.Mail.Validate(); err != nil {
		return fmt.Errorf("mail config validation failed: %w", err)
	}

	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config validation failed: %w", err)
	}

	if err := c.Registration.Validate(); err != nil {
		return fmt.Errorf("registration config validation failed: %w", err)
	}

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	return nil
}
