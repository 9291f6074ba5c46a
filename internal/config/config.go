package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Upstream UpstreamConfig `mapstructure:"upstream" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// MaxBodyBytes caps the size of an inbound request body.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"required,gt=0"`
	// ShutdownTimeoutSeconds bounds how long in-flight requests may drain on shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// Backend values for UpstreamConfig.Backend.
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// UpstreamConfig describes the Gemini endpoint requests are forwarded to.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	APIVersion     string `mapstructure:"api_version"     validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	Backend        string `mapstructure:"backend"         validate:"required,oneof=rest sdk"`
	DefaultModel   string `mapstructure:"default_model"   validate:"required"`
}

// Auth modes for AuthConfig.Mode.
const (
	ModeClient = "client"
	ModeServer = "server"
)

// AuthConfig controls where the upstream API key comes from.
//
// In client mode every caller brings its own Gemini key. In server mode the
// caller presents a shared secret and ServerAPIKey is used upstream.
type AuthConfig struct {
	Mode         string `mapstructure:"mode"           validate:"required,oneof=client server"`
	MinKeyLength int    `mapstructure:"min_key_length" validate:"required,gt=0"`

	ServerAPIKey     string `mapstructure:"server_api_key"     validate:"required_if=Mode server"`
	SharedSecretHash string `mapstructure:"shared_secret_hash" validate:"omitempty,startswith=$2"`
	JWTSecret        string `mapstructure:"jwt_secret"         validate:"omitempty,min=32"`
}
