package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store drivers understood by the record store bootstrap.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Store    StoreConfig
	Tracker  TrackerConfig
	Stats    StatsConfig
	Composer ComposerConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthConfig gates staff login. Accounts use the form
// "username:bcrypt-hash:Display Name", comma separated.
type AuthConfig struct {
	Enabled  bool
	Accounts []StaffAccount
}

// StaffAccount is a configured plant staff login.
type StaffAccount struct {
	Username     string
	PasswordHash string
	DisplayName  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StoreConfig selects the tabular store backend and the sites it partitions.
type StoreConfig struct {
	Driver string
	Sites  []string
}

// TrackerConfig holds the plant vocabulary exposed at the API boundary.
type TrackerConfig struct {
	Lines     []string
	Engineers []string
}

// StatsConfig governs dashboard/history caching and aggregation policy.
type StatsConfig struct {
	CacheEnabled        bool
	CacheTTL            time.Duration
	ZeroFillUnknownDays bool
}

// ComposerConfig bounds the lifetime of idle draft sessions.
type ComposerConfig struct {
	DraftTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	accounts, err := parseAccounts(v.GetString("AUTH_ACCOUNTS"))
	if err != nil {
		return nil, err
	}
	cfg.Auth = AuthConfig{
		Enabled:  v.GetBool("ENABLE_AUTH"),
		Accounts: accounts,
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Store = StoreConfig{
		Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		Sites:  splitAndTrim(v.GetString("SITES")),
	}
	if len(cfg.Store.Sites) == 0 {
		return nil, errors.New("SITES must name at least one site")
	}
	if cfg.Store.Driver != StoreDriverPostgres && cfg.Store.Driver != StoreDriverMemory {
		return nil, errors.New("STORE_DRIVER must be postgres or memory")
	}

	cfg.Tracker = TrackerConfig{
		Lines:     splitAndTrim(v.GetString("TRACKER_LINES")),
		Engineers: splitAndTrim(v.GetString("TRACKER_ENGINEERS")),
	}

	cfg.Stats = StatsConfig{
		CacheEnabled:        v.GetBool("ENABLE_STATS_CACHE"),
		CacheTTL:            parseDuration(v.GetString("STATS_CACHE_TTL"), 2*time.Minute),
		ZeroFillUnknownDays: v.GetBool("STATS_ZERO_FILL_UNKNOWN_DAYS"),
	}

	cfg.Composer = ComposerConfig{
		DraftTTL: parseDuration(v.GetString("COMPOSER_DRAFT_TTL"), 2*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "plant_tracker")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "plant-tracker")
	v.SetDefault("ENABLE_AUTH", false)
	v.SetDefault("AUTH_ACCOUNTS", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("SITES", "faragallah")
	v.SetDefault("TRACKER_LINES", "Line 3,Line 7,Line 9,Line 10,Line 12,Line 13")
	v.SetDefault("TRACKER_ENGINEERS", "")

	v.SetDefault("ENABLE_STATS_CACHE", false)
	v.SetDefault("STATS_CACHE_TTL", "2m")
	v.SetDefault("STATS_ZERO_FILL_UNKNOWN_DAYS", true)

	v.SetDefault("COMPOSER_DRAFT_TTL", "2h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func parseAccounts(raw string) ([]StaffAccount, error) {
	entries := splitAndTrim(raw)
	accounts := make([]StaffAccount, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, errors.New("AUTH_ACCOUNTS entries must look like username:hash[:display name]")
		}
		account := StaffAccount{Username: parts[0], PasswordHash: parts[1], DisplayName: parts[0]}
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			account.DisplayName = strings.TrimSpace(parts[2])
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}
