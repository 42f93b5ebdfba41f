package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Mail       MailConfig       `mapstructure:"mail"`
	Uploads    UploadsConfig    `mapstructure:"uploads"`
	OTP        OTPConfig        `mapstructure:"otp"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Log        LogConfig        `mapstructure:"log"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Migrations MigrationsConfig `mapstructure:"migrations"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	ClientURL  string           `mapstructure:"client_url"`
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`
}

// DBConfig holds database specific configuration
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// DSN builds a postgres connection URL.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig holds token signing settings
type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	Expiration     time.Duration `mapstructure:"expiration"`
	CookieLifetime time.Duration `mapstructure:"cookie_lifetime"`
}

// CORSConfig holds CORS specific configuration
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MailConfig holds the SMTP transport settings
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// UploadsConfig selects and configures the file storage provider.
type UploadsConfig struct {
	Driver    string `mapstructure:"driver"` // local or cloudinary
	LocalDir  string `mapstructure:"local_dir"`
	PublicURL string `mapstructure:"public_url"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		APIKey    string `mapstructure:"api_key"`
		APISecret string `mapstructure:"api_secret"`
		Folder    string `mapstructure:"folder"`
	} `mapstructure:"cloudinary"`
}

// OTPConfig holds one-time password settings
type OTPConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig limits unauthenticated auth endpoints per client IP.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// StorageConfig selects the persistence backend: postgres or memory.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// MigrationsConfig controls schema migrations at startup
type MigrationsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// NotifyConfig controls the email dispatcher
type NotifyConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load configuration from .env, config file and environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables always win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/app")

	setDefaults(v)

	// --- Read Config File (Optional) ---
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Bind Environment Variables ---
	v.SetEnvPrefix("API") // Example: API_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.cookie_secure", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "jobportal")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", 24*time.Hour)
	v.SetDefault("jwt.cookie_lifetime", 3*24*time.Hour)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	v.SetDefault("mail.host", "localhost")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.user", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "Job Portal <noreply@jobportal.com>")

	v.SetDefault("uploads.driver", "local")
	v.SetDefault("uploads.local_dir", "./uploads")
	v.SetDefault("uploads.public_url", "http://localhost:8080/uploads")
	v.SetDefault("uploads.cloudinary.folder", "job-portal")

	v.SetDefault("otp.ttl", 5*time.Minute)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.limit", 5)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")

	v.SetDefault("storage.driver", "postgres")

	v.SetDefault("migrations.enabled", true)
	v.SetDefault("migrations.path", "internal/database/migrations")

	v.SetDefault("notify.timeout", 10*time.Second)

	v.SetDefault("client_url", "http://localhost:5173")
}

// applyEnvOverrides keeps the unprefixed variable names used by existing deployments.
func applyEnvOverrides(cfg *Config) {
	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Server.Port = port
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if portStr := os.Getenv("DB_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.DB.Port = port
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.DB.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if host := os.Getenv("MAIL_HOST"); host != "" {
		cfg.Mail.Host = host
	}
	if portStr := os.Getenv("MAIL_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Mail.Port = port
		}
	}
	if user := os.Getenv("MAIL_USER"); user != "" {
		cfg.Mail.User = user
	}
	if pass := os.Getenv("MAIL_PASS"); pass != "" {
		cfg.Mail.Password = pass
	}
	if name := os.Getenv("CLOUD_NAME"); name != "" {
		cfg.Uploads.Cloudinary.CloudName = name
	}
	if key := os.Getenv("API_KEY"); key != "" {
		cfg.Uploads.Cloudinary.APIKey = key
	}
	if secret := os.Getenv("API_SECRET"); secret != "" {
		cfg.Uploads.Cloudinary.APISecret = secret
	}
	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		cfg.ClientURL = clientURL
	}

	// Handle CORS_ALLOWED_ORIGINS env var (comma-separated string -> slice)
	if originsStr := os.Getenv("CORS_ALLOWED_ORIGINS"); originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		cfg.CORS.AllowedOrigins = origins
	}
}

// Validate reports configuration that would make the server unsafe or unusable.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if c.Server.Mode != "debug" && c.Server.Mode != "test" {
			return errors.New("jwt.secret must be set outside debug mode")
		}
		c.JWT.Secret = "dev-insecure-secret"
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	switch c.Uploads.Driver {
	case "local", "cloudinary":
	default:
		return fmt.Errorf("unknown uploads.driver %q", c.Uploads.Driver)
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("jwt.expiration must be positive")
	}
	return nil
}
