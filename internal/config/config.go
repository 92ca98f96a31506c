package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mrlokans/gobiblia/internal/scripture"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Scripture
		Audit
	}

	HTTP struct {
		Port     int32
		Host     string
		GinMode  string
		ReadOnly bool // Reject requests that record or modify readings
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Scripture struct {
		BaseURL            string
		Token              string // Bearer token; requests are anonymous when empty
		DefaultVersion     string
		Timeout            time.Duration
		InsecureSkipVerify bool
		RateLimit          float64 // Requests per second, 0 = unlimited
		RateBurst          int
	}
	Audit struct {
		Enabled bool
		Dir     string
	}
)

// ClientOptions converts the scripture settings into client options.
func (s Scripture) ClientOptions() scripture.Options {
	return scripture.Options{
		BaseURL:            s.BaseURL,
		Token:              s.Token,
		DefaultVersion:     s.DefaultVersion,
		Timeout:            s.Timeout,
		InsecureSkipVerify: s.InsecureSkipVerify,
		RateLimit:          s.RateLimit,
		RateBurst:          s.RateBurst,
	}
}

// LoadEnvFile loads variables from path into the process environment.
// A missing file is not an error; existing variables are not overridden.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		log.Printf("Loaded environment from %s", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func NewConfig() *Config {
	if err := LoadEnvFile(DefaultEnvFile); err != nil {
		log.Printf("Warning: failed to load %s: %v", DefaultEnvFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("read_only", false)
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Remote scripture API defaults
	v.SetDefault("scripture_base_url", scripture.DefaultBaseURL)
	v.SetDefault("scripture_token", "")
	v.SetDefault("scripture_default_version", scripture.DefaultVersion)
	v.SetDefault("scripture_timeout", scripture.DefaultTimeout.String())
	v.SetDefault("scripture_insecure_skip_verify", false)
	v.SetDefault("scripture_rate_limit", 0)
	v.SetDefault("scripture_rate_burst", 1)

	v.SetDefault("audit_enabled", false)
	v.SetDefault("audit_dir", "./audit")

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			GinMode:  v.GetString("GIN_MODE"),
			ReadOnly: v.GetBool("READ_ONLY"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Scripture: Scripture{
			BaseURL:            v.GetString("SCRIPTURE_BASE_URL"),
			Token:              v.GetString("SCRIPTURE_TOKEN"),
			DefaultVersion:     v.GetString("SCRIPTURE_DEFAULT_VERSION"),
			Timeout:            v.GetDuration("SCRIPTURE_TIMEOUT"),
			InsecureSkipVerify: v.GetBool("SCRIPTURE_INSECURE_SKIP_VERIFY"),
			RateLimit:          v.GetFloat64("SCRIPTURE_RATE_LIMIT"),
			RateBurst:          v.GetInt("SCRIPTURE_RATE_BURST"),
		},
		Audit: Audit{
			Enabled: v.GetBool("AUDIT_ENABLED"),
			Dir:     v.GetString("AUDIT_DIR"),
		},
	}
}
