package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	Rules    RulesConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	ReadTimeout time.Duration
}

type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Enabled       bool
	Host          string
	Port          int
	Password      string
	DB            int
	VenueCacheTTL time.Duration
}

type JWTConfig struct {
	AccessSecret string
	Issuer       string
}

type StorageConfig struct {
	Type      string
	Path      string
	PublicURL string
	S3Bucket  string
	AWSRegion string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// RulesConfig holds the tunable product rules.
type RulesConfig struct {
	MaxActiveMatches        int
	InitialMessageLimit     int
	DateSuggestionThreshold int
	MaxVenueSuggestions     int
	DiscoverPageSize        int
	PhotoExpirationDays     int
	DefaultTimezone         string
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	StorageLocal = "local"
	StorageS3    = "s3"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("VENUE_CACHE_TTL", 5*time.Minute)

	v.SetDefault("JWT_ISSUER", "datepoint")

	v.SetDefault("STORAGE_TYPE", StorageLocal)
	v.SetDefault("STORAGE_PATH", "./uploads")
	v.SetDefault("STORAGE_PUBLIC_URL", "/uploads")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("RULES_MAX_ACTIVE_MATCHES", 10)
	v.SetDefault("RULES_INITIAL_MESSAGE_LIMIT", 3)
	v.SetDefault("RULES_DATE_SUGGESTION_THRESHOLD", 10)
	v.SetDefault("RULES_MAX_VENUE_SUGGESTIONS", 3)
	v.SetDefault("RULES_DISCOVER_PAGE_SIZE", 20)
	v.SetDefault("RULES_PHOTO_EXPIRATION_DAYS", 30)
	v.SetDefault("RULES_DEFAULT_TIMEZONE", "UTC")
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := fromViper(v)

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:        v.GetString("SERVER_HOST"),
			Port:        v.GetInt("SERVER_PORT"),
			Env:         v.GetString("ENV"),
			ReadTimeout: v.GetDuration("SERVER_READ_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:      v.GetString("DB_DRIVER"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Enabled:       v.GetBool("REDIS_ENABLED"),
			Host:          v.GetString("REDIS_HOST"),
			Port:          v.GetInt("REDIS_PORT"),
			Password:      v.GetString("REDIS_PASSWORD"),
			DB:            v.GetInt("REDIS_DB"),
			VenueCacheTTL: v.GetDuration("VENUE_CACHE_TTL"),
		},
		JWT: JWTConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
			Issuer:       v.GetString("JWT_ISSUER"),
		},
		Storage: StorageConfig{
			Type:      v.GetString("STORAGE_TYPE"),
			Path:      v.GetString("STORAGE_PATH"),
			PublicURL: v.GetString("STORAGE_PUBLIC_URL"),
			S3Bucket:  v.GetString("S3_BUCKET"),
			AWSRegion: v.GetString("AWS_REGION"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Rules: RulesConfig{
			MaxActiveMatches:        v.GetInt("RULES_MAX_ACTIVE_MATCHES"),
			InitialMessageLimit:     v.GetInt("RULES_INITIAL_MESSAGE_LIMIT"),
			DateSuggestionThreshold: v.GetInt("RULES_DATE_SUGGESTION_THRESHOLD"),
			MaxVenueSuggestions:     v.GetInt("RULES_MAX_VENUE_SUGGESTIONS"),
			DiscoverPageSize:        v.GetInt("RULES_DISCOVER_PAGE_SIZE"),
			PhotoExpirationDays:     v.GetInt("RULES_PHOTO_EXPIRATION_DAYS"),
			DefaultTimezone:         v.GetString("RULES_DEFAULT_TIMEZONE"),
		},
	}
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}

	switch c.Storage.Type {
	case StorageLocal:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for local storage")
		}
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	r := c.Rules
	if r.MaxActiveMatches < 1 || r.InitialMessageLimit < 1 || r.MaxVenueSuggestions < 1 || r.DiscoverPageSize < 1 {
		return fmt.Errorf("rule limits must be positive")
	}
	if r.DateSuggestionThreshold < 2 || r.DateSuggestionThreshold%2 != 0 {
		return fmt.Errorf("date suggestion threshold must be an even number of at least 2")
	}
	if _, err := time.LoadLocation(r.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid default timezone: %w", err)
	}
	return nil
}

func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
