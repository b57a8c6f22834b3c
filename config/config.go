package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigPath is where Load looks for the JSON config when no path is given.
const DefaultConfigPath = "config/config.json"

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via env files or the environment.
type AppConfig struct {
	AppPort            string
	JWTSecret          string
	RateLimitPerMinute int
	AllowedOrigins     []string
	ShutdownTimeout    time.Duration
	// Database
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis for feed caching and session revocation
	RedisEnabled  bool
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Session cookie
	SessionCookieName   string
	SessionTTL          time.Duration
	SessionSecureCookie bool
	// Feed and posts
	FeedPageSize  int
	FeedCacheTTL  time.Duration
	PostMaxLength int
	// Gin framework configuration
	GinMode string
	GinPath string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var (
	cfg    AppConfig
	loaded bool
	mu     sync.RWMutex
)

// keys maps viper keys (grouped JSON sections) to the environment variables overriding them.
var keys = map[string]string{
	"app.port":               "APP_PORT",
	"app.jwtsecret":          "JWT_SECRET",
	"app.ratelimitperminute": "RATE_LIMIT_PER_MINUTE",
	"app.allowedorigins":     "CORS_ALLOWED_ORIGINS",
	"app.shutdowntimeout":    "SHUTDOWN_TIMEOUT",
	"database.driver":        "DB_DRIVER",
	"database.databaseuri":   "DATABASE_URI",
	"database.dbhost":        "DB_HOST",
	"database.dbport":        "DB_PORT",
	"database.dbuser":        "DB_USER",
	"database.dbpassword":    "DB_PASSWORD",
	"database.dbname":        "DB_NAME",
	"redis.enabled":          "REDIS_ENABLED",
	"redis.redishost":        "REDIS_HOST",
	"redis.redisport":        "REDIS_PORT",
	"redis.redisdb":          "REDIS_DB",
	"redis.redispassword":    "REDIS_PASSWORD",
	"session.cookiename":     "SESSION_COOKIE_NAME",
	"session.ttl":            "SESSION_TTL",
	"session.securecookie":   "SESSION_SECURE_COOKIE",
	"feed.pagesize":          "FEED_PAGE_SIZE",
	"feed.cachettl":          "FEED_CACHE_TTL",
	"feed.postmaxlength":     "POST_MAX_LENGTH",
	"log.level":              "LOG_LEVEL",
	"log.path":               "LOG_PATH",
	"log.ginmode":            "GIN_MODE",
	"log.ginpath":            "GIN_PATH",
	"log.maxsizemb":          "LOG_MAX_SIZE_MB",
	"log.maxbackups":         "LOG_MAX_BACKUPS",
	"log.maxagedays":         "LOG_MAX_AGE_DAYS",
	"log.compress":           "LOG_COMPRESS",
}

// Load reads configuration once. Precedence: JSON config file -> defaults -> environment overrides.
// A .env file in the working directory is loaded into the environment first when present.
func Load(path string) (AppConfig, error) {
	mu.Lock()
	defer mu.Unlock()
	if loaded {
		return cfg, nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	c, err := read(path)
	if err != nil {
		return AppConfig{}, err
	}
	cfg = c
	loaded = true
	return cfg, nil
}

// Get returns the cached configuration, loading it from the default path if necessary.
func Get() AppConfig {
	mu.RLock()
	if loaded {
		defer mu.RUnlock()
		return cfg
	}
	mu.RUnlock()

	c, err := Load(DefaultConfigPath)
	if err != nil {
		// unreadable config file: fall back to defaults plus environment
		c, _ = read("")
	}
	return c
}

// Override replaces the cached configuration. Used by tests and CLI flags.
func Override(c AppConfig) {
	mu.Lock()
	cfg = c
	loaded = true
	mu.Unlock()
}

// Reset drops the cached configuration so the next Load reads again.
func Reset() {
	mu.Lock()
	cfg = AppConfig{}
	loaded = false
	mu.Unlock()
}

// Defaults returns a configuration holding only the built-in defaults.
func Defaults() AppConfig {
	v := viper.New()
	applyDefaults(v)
	return decode(v)
}

// Validate reports configuration that makes serving impossible.
func (c AppConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in environment variables")
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.FeedPageSize <= 0 {
		return fmt.Errorf("feed page size must be positive, got %d", c.FeedPageSize)
	}
	return nil
}

func read(path string) (AppConfig, error) {
	v := viper.New()
	applyDefaults(v)
	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			return AppConfig{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	return decode(v), nil
}

func decode(v *viper.Viper) AppConfig {
	c := AppConfig{
		AppPort:             v.GetString("app.port"),
		JWTSecret:           v.GetString("app.jwtsecret"),
		RateLimitPerMinute:  v.GetInt("app.ratelimitperminute"),
		AllowedOrigins:      stringList(v, "app.allowedorigins"),
		ShutdownTimeout:     v.GetDuration("app.shutdowntimeout"),
		DBDriver:            strings.ToLower(v.GetString("database.driver")),
		DatabaseURI:         v.GetString("database.databaseuri"),
		DBHost:              v.GetString("database.dbhost"),
		DBPort:              v.GetString("database.dbport"),
		DBUser:              v.GetString("database.dbuser"),
		DBPassword:          v.GetString("database.dbpassword"),
		DBName:              v.GetString("database.dbname"),
		RedisEnabled:        v.GetBool("redis.enabled"),
		RedisHost:           v.GetString("redis.redishost"),
		RedisPort:           v.GetInt("redis.redisport"),
		RedisDB:             v.GetInt("redis.redisdb"),
		RedisPassword:       v.GetString("redis.redispassword"),
		SessionCookieName:   v.GetString("session.cookiename"),
		SessionTTL:          v.GetDuration("session.ttl"),
		SessionSecureCookie: v.GetBool("session.securecookie"),
		FeedPageSize:        v.GetInt("feed.pagesize"),
		FeedCacheTTL:        v.GetDuration("feed.cachettl"),
		PostMaxLength:       v.GetInt("feed.postmaxlength"),
		GinMode:             v.GetString("log.ginmode"),
		GinPath:             v.GetString("log.ginpath"),
		LogLevel:            v.GetString("log.level"),
		LogPath:             v.GetString("log.path"),
		LogMaxSizeMB:        v.GetInt("log.maxsizemb"),
		LogMaxBackups:       v.GetInt("log.maxbackups"),
		LogMaxAgeDays:       v.GetInt("log.maxagedays"),
		LogCompress:         v.GetBool("log.compress"),
	}
	if c.DBPort == "" {
		switch c.DBDriver {
		case "postgres":
			c.DBPort = "5432"
		case "mysql":
			c.DBPort = "3306"
		}
	}
	return c
}

// applyDefaults sets sane defaults for values missing from file and environment.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.ratelimitperminute", 60)
	v.SetDefault("app.allowedorigins", []string{"*"})
	v.SetDefault("app.shutdowntimeout", 30*time.Second)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dbhost", "127.0.0.1")
	v.SetDefault("database.dbuser", "root")
	v.SetDefault("database.dbname", "microblog")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.redishost", "127.0.0.1")
	v.SetDefault("redis.redisport", 6379)
	v.SetDefault("session.cookiename", "session")
	v.SetDefault("session.ttl", 72*time.Hour)
	v.SetDefault("feed.pagesize", 25)
	v.SetDefault("feed.cachettl", time.Minute)
	v.SetDefault("feed.postmaxlength", 280)
	v.SetDefault("log.ginmode", "release")
	v.SetDefault("log.ginpath", "logs/go_gin.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 3)
	v.SetDefault("log.maxagedays", 7)
}

// stringList accepts either a JSON array or a comma separated string (environment form).
func stringList(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		return splitAndTrim(raw)
	}
	return v.GetStringSlice(key)
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
