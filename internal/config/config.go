package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Harmonics HarmonicsConfig
	Export    ExportConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// HarmonicsConfig holds the highest harmonic orders used by the generator
type HarmonicsConfig struct {
	NMax int
	MMax int
}

// ExportConfig holds S3/MinIO configuration for CSV exports.
// An empty Bucket disables uploaded exports.
type ExportConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string
	URLExpiry       time.Duration
}

// Enabled reports whether uploaded exports are configured
func (c ExportConfig) Enabled() bool {
	return c.Bucket != ""
}

var keys = []string{
	"PORT",
	"ENVIRONMENT",
	"ALLOWED_ORIGINS",
	"LOG_LEVEL",
	"HARMONIC_N_MAX",
	"HARMONIC_M_MAX",
	"AWS_REGION",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"EXPORT_BUCKET",
	"S3_ENDPOINT",
	"EXPORT_URL_TTL",
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HARMONIC_N_MAX", 5)
	v.SetDefault("HARMONIC_M_MAX", 5)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("EXPORT_BUCKET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("EXPORT_URL_TTL", "15m")

	// Environment variables override .env file values
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	// Read .env file for the current environment (ignore error if missing)
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	var config Config
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = env
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Harmonics.NMax = v.GetInt("HARMONIC_N_MAX")
	config.Harmonics.MMax = v.GetInt("HARMONIC_M_MAX")
	config.Export.Region = v.GetString("AWS_REGION")
	config.Export.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.Export.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.Export.Bucket = v.GetString("EXPORT_BUCKET")
	config.Export.Endpoint = v.GetString("S3_ENDPOINT")
	config.Export.URLExpiry = v.GetDuration("EXPORT_URL_TTL")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("environment", config.Server.Env).
		Int("n_max", config.Harmonics.NMax).
		Int("m_max", config.Harmonics.MMax).
		Bool("exports_enabled", config.Export.Enabled()).
		Msg("Configuration loaded")

	return &config, nil
}

// Validate rejects values the calculator cannot run with
func (c *Config) Validate() error {
	if c.Harmonics.NMax < 0 || c.Harmonics.MMax < 0 {
		return fmt.Errorf("harmonic limits must be non-negative (n_max=%d, m_max=%d)", c.Harmonics.NMax, c.Harmonics.MMax)
	}
	if c.Export.Enabled() && c.Export.URLExpiry <= 0 {
		return fmt.Errorf("EXPORT_URL_TTL must be positive, got %s", c.Export.URLExpiry)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
