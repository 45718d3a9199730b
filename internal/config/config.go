package config

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Storage backend names accepted in storage.backend.
const (
	BackendFile      = "file"
	BackendPostgres  = "postgres"
	BackendAzureBlob = "azureblob"
	BackendMemory    = "memory"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

// StorageConfig selects and configures the record store backend
type StorageConfig struct {
	Backend string
	Key     string
	// EncryptionKey enables at-rest encryption of the record blob when
	// set. Base64-encoded 32-byte key.
	EncryptionKey string
	File          FileStorageConfig
	Database      DatabaseConfig
	Azure         AzureStorageConfig
}

// FileStorageConfig holds file-backend configuration
type FileStorageConfig struct {
	Dir string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AzureStorageConfig holds Azure Blob Storage configuration
type AzureStorageConfig struct {
	AccountName string
	AccountKey  string
	Container   string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	// Bind specific environment variables
	bindEnvVars(v)

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)
	v.SetDefault("server.corsorigins", []string{"http://localhost:5173"})

	// Storage defaults
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.key", "LZRYEK_EPILEPSY_PATIENTS")
	v.SetDefault("storage.file.dir", "./data")
	v.SetDefault("storage.database.maxopenconns", 25)
	v.SetDefault("storage.database.maxidleconns", 5)
	v.SetDefault("storage.database.connmaxlifetime", 5*time.Minute)
	v.SetDefault("storage.azure.container", "patient-records")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")
	v.BindEnv("server.corsorigins", "CORS_ORIGINS")

	// Storage
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.key", "STORAGE_KEY")
	v.BindEnv("storage.encryptionkey", "STORAGE_ENCRYPTION_KEY")
	v.BindEnv("storage.file.dir", "STORAGE_FILE_DIR")
	v.BindEnv("storage.database.url", "DATABASE_URL")
	v.BindEnv("storage.azure.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("storage.azure.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	v.BindEnv("storage.azure.container", "AZURE_STORAGE_CONTAINER")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key is required")
	}

	if c.Storage.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(c.Storage.EncryptionKey)
		if err != nil {
			return fmt.Errorf("storage.encryptionkey is not valid base64: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("storage.encryptionkey must decode to 32 bytes, got %d", len(key))
		}
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.File.Dir == "" {
			return fmt.Errorf("storage.file.dir is required for the file backend")
		}
	case BackendPostgres:
		if c.Storage.Database.URL == "" {
			return fmt.Errorf("storage.database.url is required for the postgres backend")
		}
	case BackendAzureBlob:
		if c.Storage.Azure.AccountName == "" || c.Storage.Azure.AccountKey == "" {
			return fmt.Errorf("azure storage credentials are required (account name + key)")
		}
		if c.Storage.Azure.Container == "" {
			return fmt.Errorf("storage.azure.container is required for the azureblob backend")
		}
	case BackendMemory:
		// No settings
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	return nil
}
