package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the blog server. Values come from the
// process environment after the .env files have been loaded.
type Config struct {
	Addr   string
	AppEnv string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	SecretKey     string
	CSRFKey       string
	SecureCookies bool

	PostsPerPage  int
	IndexCacheTTL time.Duration
	CacheBackend  string
	CacheSize     int
	RedisHost     string
	RedisPort     string
	RedisPasswd   string
	RedisDB       int

	MediaBackend   string
	MediaRoot      string
	MediaURL       string
	S3Bucket       string
	S3Region       string
	S3BaseURL      string
	MaxUploadBytes int64

	LogLevel  string
	LogFormat string
}

// LoadDotEnvs loads the .env files for the current APP_ENV. Files loaded first
// win, since godotenv never overrides a variable that is already set:
// .env.<env>.local, .env.local, .env.<env>, .env
func LoadDotEnvs(rootPath string) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	godotenv.Load(rootPath + ".env." + env + ".local")
	godotenv.Load(rootPath + ".env.local")
	godotenv.Load(rootPath + ".env." + env)
	godotenv.Load(rootPath + ".env")
}

// Load reads the .env files from the working directory and builds a Config.
func Load() (*Config, error) {
	LoadDotEnvs("")
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:   getEnv("ADDR", ":8000"),
		AppEnv: getEnv("APP_ENV", "dev"),

		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "blogger"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "blogger.db"),

		SecretKey: os.Getenv("SECRET_KEY"),
		CSRFKey:   os.Getenv("CSRF_KEY"),

		CacheBackend: getEnv("CACHE_BACKEND", "memory"),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisPasswd:  os.Getenv("REDIS_PASSWD"),

		MediaBackend: getEnv("MEDIA_BACKEND", "local"),
		MediaRoot:    getEnv("MEDIA_ROOT", "media"),
		MediaURL:     getEnv("MEDIA_URL", "/media/"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3Region:     getEnv("S3_REGION", "us-west-1"),
		S3BaseURL:    os.Getenv("S3_BASE_URL"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.SecureCookies, err = getBool("SECURE_COOKIES", false); err != nil {
		return nil, err
	}
	if cfg.PostsPerPage, err = getInt("POSTS_PER_PAGE", 10); err != nil {
		return nil, err
	}
	if cfg.PostsPerPage < 1 {
		return nil, fmt.Errorf("POSTS_PER_PAGE must be positive, got %d", cfg.PostsPerPage)
	}
	if cfg.IndexCacheTTL, err = getDuration("INDEX_CACHE_TTL", 20*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getInt("CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	maxUpload, err := getInt("MAX_UPLOAD_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.CacheBackend {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.CacheBackend)
	}
	switch cfg.MediaBackend {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when MEDIA_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("unsupported MEDIA_BACKEND %q", cfg.MediaBackend)
	}

	return cfg, nil
}

// PostgresDSN returns DATABASE_URL when set, otherwise a key=value DSN built
// from the DB_* variables.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr is host:port of the cache server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
