package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Auth         Auth
	App          App
	Log          Log
	GeminiApiKey string
	GeminiModel  string
}

type Server struct {
	Port           string
	AllowedOrigins []string
}

type Database struct {
	Driver       string // "postgres" or "sqlite"
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
}

type Auth struct {
	JWTSecret              string
	CookieName             string
	CookieSecure           bool
	SessionTTL             time.Duration
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

type App struct {
	Timezone     string
	DailySetSize int
}

type Log struct {
	Level  string
	Format string
}

// Location resolves App.Timezone, the calendar-day boundary for daily sets, sessions and streaks.
func (a App) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", a.Timezone).Msg("Unknown APP_TIMEZONE, falling back to UTC")
		return time.UTC
	}
	return loc
}

// DSN builds the postgres connection string; DATABASE_URL wins when set.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s application_name=dailydose",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_NAME", "dailydose")
	v.SetDefault("DATABASE_SSLMODE", "require")
	v.SetDefault("DATABASE_SQLITE_PATH", "dailydose.db")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 10)
	v.SetDefault("SESSION_COOKIE_NAME", "ddp_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_TTL", "72h")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("DAILY_SET_SIZE", 10)
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	setDefaults(v)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.URL = v.GetString("DATABASE_URL")
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	config.Database.SQLitePath = v.GetString("DATABASE_SQLITE_PATH")
	config.Database.MaxOpenConns = v.GetInt("DATABASE_MAX_OPEN_CONNS")
	config.Database.MaxIdleConns = v.GetInt("DATABASE_MAX_IDLE_CONNS")

	config.Auth.JWTSecret = v.GetString("JWT_SECRET")
	config.Auth.CookieName = v.GetString("SESSION_COOKIE_NAME")
	config.Auth.CookieSecure = v.GetBool("SESSION_COOKIE_SECURE")
	config.Auth.SessionTTL = v.GetDuration("SESSION_TTL")
	config.Auth.BootstrapAdminEmail = v.GetString("BOOTSTRAP_ADMIN_EMAIL")
	config.Auth.BootstrapAdminPassword = v.GetString("BOOTSTRAP_ADMIN_PASSWORD")

	config.App.Timezone = v.GetString("APP_TIMEZONE")
	config.App.DailySetSize = v.GetInt("DAILY_SET_SIZE")

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.Format = v.GetString("LOG_FORMAT")

	config.GeminiApiKey = v.GetString("GEMINI_API_KEY")
	config.GeminiModel = v.GetString("GEMINI_MODEL")

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Str("timezone", config.App.Timezone).
		Int("daily_set_size", config.App.DailySetSize).
		Bool("gemini_enabled", config.GeminiApiKey != "").
		Msg("Config loaded")
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		if c.Database.Driver == "postgres" {
			return fmt.Errorf("JWT_SECRET must be set")
		}
		log.Warn().Msg("JWT_SECRET is not set; using an insecure development secret")
		c.Auth.JWTSecret = "dailydose-dev-secret"
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.App.DailySetSize <= 0 {
		return fmt.Errorf("DAILY_SET_SIZE must be positive, got %d", c.App.DailySetSize)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
