package config

// Default locations and remote settings
const (
	// DefaultDatabasePath is the default path for the reading progress database
	DefaultDatabasePath = "./gobiblia.db"

	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
)
