package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Media    MediaConfig    `mapstructure:"media" validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all MongoDB related settings.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri" validate:"required,url"`
	Name string `mapstructure:"name" validate:"required"`
}

// AuthConfig contains all authentication related settings.
// The signing secret has no default and must be provided; the process
// refuses to start without it.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// MediaConfig contains the remote asset host credentials and the folder
// product images are uploaded under.
type MediaConfig struct {
	CloudName string `mapstructure:"cloud_name" validate:"required"`
	APIKey    string `mapstructure:"api_key" validate:"required"`
	APISecret string `mapstructure:"api_secret" validate:"required"`
	Folder    string `mapstructure:"folder" validate:"required"`
}
