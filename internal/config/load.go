package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the service reads,
// e.g. GPROXY_SERVER_PORT for server.port.
const EnvPrefix = "GPROXY"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory is loaded first when present.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithEnvFile(".env")
}

// LoadWithEnvFile behaves like Load but reads dotenv values from envFile.
// Variables already present in the process environment are never overridden.
// A missing envFile is not an error.
func LoadWithEnvFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrNoSharedSecret is returned when server mode is configured without any
// way for callers to prove they may use the server key.
var ErrNoSharedSecret = errors.New("auth.mode=server requires auth.shared_secret_hash or auth.jwt_secret")

// Validate runs the struct-tag validation over cfg, followed by the
// cross-field checks tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Auth.Mode == ModeServer && cfg.Auth.SharedSecretHash == "" && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("config validation failed: %w", ErrNoSharedSecret)
	}
	return nil
}

// setDefaults registers a default for every key. AutomaticEnv only resolves
// keys viper already knows about, so nothing may be left out here.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("upstream.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("upstream.api_version", "v1")
	v.SetDefault("upstream.timeout_seconds", 30)
	v.SetDefault("upstream.backend", BackendREST)
	v.SetDefault("upstream.default_model", "gemini-1.5-flash")

	v.SetDefault("auth.mode", ModeClient)
	v.SetDefault("auth.min_key_length", 20)
	v.SetDefault("auth.server_api_key", "")
	v.SetDefault("auth.shared_secret_hash", "")
	v.SetDefault("auth.jwt_secret", "")
}
