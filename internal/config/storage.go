package config

import "fmt"

// StorageConfig holds object store configuration for payment proofs.
type StorageConfig struct {
	// Root is the directory objects are written to.
	Root string
	// PublicBaseURL prefixes object paths to build public URLs.
	PublicBaseURL string
	// MaxProofSize is the upper bound for a payment screenshot in bytes.
	MaxProofSize int64
}

// LoadStorageConfigFromEnv loads storage configuration from environment variables.
func LoadStorageConfigFromEnv() StorageConfig {
	return StorageConfig{
		Root:          GetEnv("STORAGE_ROOT", "uploads"),
		PublicBaseURL: GetEnv("STORAGE_PUBLIC_BASE_URL", "/uploads"),
		MaxProofSize:  GetEnvInt64("STORAGE_MAX_PROOF_SIZE", 5*1024*1024),
	}
}

// Validate validates storage configuration.
func (c StorageConfig) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("STORAGE_ROOT is required")
	}
	if c.MaxProofSize <= 0 {
		return fmt.Errorf("STORAGE_MAX_PROOF_SIZE must be greater than 0")
	}
	return nil
}
