// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath = pflag.String("config", ".", "Directory containing config.toml")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	// A missing .env file is fine, the variables may come from the environment
	_ = godotenv.Load()

	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	bindEnvs()
	SetDefaults()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		fmt.Println("[WARNING]: config.toml not found, using defaults and environment variables")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if err := Validate(); err != nil {
		return err
	}

	if !v.GetBool("turnstile.enabled") {
		fmt.Println("[WARNING]: Cloudflare's turnstile is disabled. Registration and password reset won't be guarded against bots")
	}

	if !v.GetBool("mail.enabled") {
		fmt.Println("[WARNING]: Mail is disabled. Password reset links will only be logged")
	}

	return nil
}

func bindEnvs() {
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")
	v.BindEnv("host.frontend_url", "host_frontend_url")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")
	v.BindEnv("db.log", "db_log")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.ttl_hours", "jwt_ttl_hours")

	v.BindEnv("auth.reset_token_ttl_minutes", "auth_reset_token_ttl_minutes")

	v.BindEnv("mail.enabled", "mail_enabled")
	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("ai.api_key", "ai_api_key")
	v.BindEnv("ai.model", "ai_model")
	v.BindEnv("ai.min_history", "ai_min_history")
	v.BindEnv("ai.max_history", "ai_max_history")

	v.BindEnv("upload.max_size", "upload_max_size")
	v.BindEnv("upload.max_files", "upload_max_files")

	v.BindEnv("receipts.archive.enabled", "receipts_archive_enabled")
	v.BindEnv("receipts.archive.bucket", "receipts_archive_bucket")
	v.BindEnv("receipts.archive.region", "receipts_archive_region")
	v.BindEnv("receipts.archive.access_key_id", "receipts_archive_access_key_id")
	v.BindEnv("receipts.archive.secret_access_key", "receipts_archive_secret_access_key")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("turnstile.enabled", "turnstile_enabled")
	v.BindEnv("turnstile.secret_token", "turnstile_secret_token")
}

// SetDefaults registers the default value of every known key
func SetDefaults() {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("host.frontend_url", "http://localhost:5173")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")
	v.SetDefault("db.log", false)

	v.SetDefault("jwt.ttl_hours", 24*30)

	v.SetDefault("auth.reset_token_ttl_minutes", 15)

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.port", 587)

	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.min_history", 5)
	v.SetDefault("ai.max_history", 100)

	v.SetDefault("upload.max_size", 10)
	v.SetDefault("upload.max_files", 5)

	v.SetDefault("receipts.archive.enabled", false)

	v.SetDefault("security.rate_limit", 0)

	v.SetDefault("turnstile.enabled", false)
}

// Validate checks the loaded values and returns the first problem found
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 || v.GetInt("host.port") > 65535 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		return errors.New("jwt.secret can't be empty")
	}

	if v.GetInt("jwt.ttl_hours") <= 0 {
		return errors.New("jwt.ttl_hours must be bigger than 0")
	}

	if v.GetInt("auth.reset_token_ttl_minutes") <= 0 {
		return errors.New("auth.reset_token_ttl_minutes must be bigger than 0")
	}

	if v.GetBool("mail.enabled") {
		if v.GetString("mail.host") == "" {
			return errors.New("mail host can't be empty")
		}
		if v.GetString("mail.sender") == "" {
			return errors.New("mail sender can't be empty")
		}
		if v.GetInt("mail.port") <= 0 {
			return errors.New("invalid mail port provided")
		}
	}

	if v.GetString("ai.api_key") == "" {
		zap.L().Warn("No ai.api_key specified, receipt scanning and forecasting will fail")
	}

	if v.GetInt("ai.min_history") <= 0 {
		return errors.New("ai.min_history must be bigger than 0")
	}

	if v.GetInt("ai.max_history") < v.GetInt("ai.min_history") {
		return errors.New("ai.max_history can't be smaller than ai.min_history")
	}

	if v.GetInt64("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("upload.max_files") <= 0 {
		return errors.New("upload.max_files must be bigger than 0")
	}

	if v.GetBool("receipts.archive.enabled") {
		if v.GetString("receipts.archive.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
		if v.GetString("receipts.archive.region") == "" {
			return errors.New("region can't be empty")
		}
		if v.GetString("receipts.archive.access_key_id") == "" {
			return errors.New("account access id can't be empty")
		}
		if v.GetString("receipts.archive.secret_access_key") == "" {
			return errors.New("secret access key can't be empty")
		}
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetBool("turnstile.enabled") && v.GetString("turnstile.secret_token") == "" {
		return errors.New("turnstile secret token is missing")
	}

	return nil
}

// MaxUploadSize returns the per-image upload limit in bytes
func MaxUploadSize() int64 {
	return v.GetInt64("upload.max_size") << 20
}
