package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Notify   NotifyConfig   `mapstructure:"notify"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// AllowedOrigins lists the Origin header values accepted on the
	// notification handshake. Empty means same-origin only.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	Issuer               string `mapstructure:"issuer"                 validate:"required"`
	Audience             string `mapstructure:"audience"               validate:"required"`
	BCryptCost           int    `mapstructure:"bcrypt_cost"            validate:"required,gte=4,lte=31"`
}

// NotifyConfig tunes the real-time task notification hub.
type NotifyConfig struct {
	// SendBuffer is the number of messages queued per session before the
	// session is considered too slow and dropped.
	SendBuffer int `mapstructure:"send_buffer" validate:"required,gt=0"`

	PingIntervalSeconds int `mapstructure:"ping_interval_seconds" validate:"required,gt=0"`

	// PongWaitSeconds must exceed PingIntervalSeconds or every session
	// would time out between two pings.
	PongWaitSeconds int `mapstructure:"pong_wait_seconds" validate:"required,gtfield=PingIntervalSeconds"`

	// BroadcastConcurrency bounds the goroutines used for one fan-out.
	BroadcastConcurrency int `mapstructure:"broadcast_concurrency" validate:"required,gt=0"`
}
