package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevSecretKey используется только в debug-режиме, если SECRET_KEY не задан
const DevSecretKey = "dev-secret-key"

// Поддерживаемые драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Quiz     QuizConfig
	CORS     CORSConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // секунды
	WriteTimeout int    `mapstructure:"write_timeout"` // секунды
	Mode         string `mapstructure:"mode"`          // debug, release, test
}

// DatabaseConfig содержит настройки подключения к хранилищу
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	DBName     string `mapstructure:"dbname"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RedisConfig содержит настройки подключения к Redis.
// Пустые Addr и Addrs отключают кеширование.
type RedisConfig struct {
	// Mode: "single", "sentinel" или "cluster". По умолчанию "single".
	Mode       string   `mapstructure:"mode"`
	Addrs      []string `mapstructure:"addrs"`
	Addr       string   `mapstructure:"addr"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
	MasterName string   `mapstructure:"master_name"`
	KeyPrefix  string   `mapstructure:"key_prefix"`
}

// SessionConfig содержит настройки сессионной куки
type SessionConfig struct {
	SecretKey    string `mapstructure:"secret_key"`
	LifetimeHrs  int    `mapstructure:"lifetime_hrs"`
	CookieName   string `mapstructure:"cookie_name"`
	SecureCookie bool   `mapstructure:"secure_cookie"`
}

// QuizConfig содержит настройки работы с викторинами
type QuizConfig struct {
	CacheTTLSec    int   `mapstructure:"cache_ttl_sec"`
	MaxImportBytes int64 `mapstructure:"max_import_bytes"`
}

// CORSConfig содержит список разрешенных источников для /api
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IsRelease сообщает, запущено ли приложение в release-режиме
func (s ServerConfig) IsRelease() bool {
	return s.Mode == "release"
}

// RedisEnabled сообщает, задан ли хотя бы один адрес Redis
func (r RedisConfig) RedisEnabled() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("server.mode", "debug")

	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.dbname", "quiz_app")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.sqlite_path", "quiz_app.db")

	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.key_prefix", "quiz_app:")

	vip.SetDefault("session.lifetime_hrs", 24)
	vip.SetDefault("session.cookie_name", "session")

	vip.SetDefault("quiz.cache_ttl_sec", 3600)
	vip.SetDefault("quiz.max_import_bytes", 2<<20)
}

func bindEnv(vip *viper.Viper) {
	vip.BindEnv("server.port", "PORT")
	vip.BindEnv("server.mode", "GIN_MODE")

	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.sqlite_path", "DATABASE_SQLITE_PATH")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("session.secret_key", "SECRET_KEY")
	vip.BindEnv("session.lifetime_hrs", "SESSION_LIFETIME_HRS")
	vip.BindEnv("session.secure_cookie", "SESSION_SECURE_COOKIE")
}

// Load загружает конфигурацию: .env, затем файл configPath, затем переменные окружения
func Load(configPath string) (*Config, error) {
	// .env не обязателен: в проде переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Предупреждение: не удалось прочитать .env: %v", err)
	}

	vip := viper.New() // Новый экземпляр Viper, без глобального состояния
	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !cfg.Server.IsRelease() {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s (mode: %s)", cfg.Server.Port, cfg.Server.Mode)
		log.Printf("Database Driver: %s", cfg.Database.Driver)
		log.Printf("Database Host: %s, Name: %s", cfg.Database.Host, cfg.Database.DBName)
		log.Printf("Redis Enabled: %t", cfg.Redis.RedisEnabled())
		log.Printf("Session Secret Key Set: %t", cfg.Session.SecretKey != DevSecretKey)
		log.Printf("-----------------------------------------")
	}

	return &cfg, nil
}

// validate проверяет обязательные параметры и подставляет dev-значения
func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required (check DATABASE_SQLITE_PATH env var)")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.Session.SecretKey == "" {
		if c.Server.IsRelease() {
			return fmt.Errorf("session secret key is required in release mode (check SECRET_KEY env var)")
		}
		log.Println("Warning: SECRET_KEY is not set, using development secret key.")
		c.Session.SecretKey = DevSecretKey
	}
	if c.Session.LifetimeHrs <= 0 {
		c.Session.LifetimeHrs = 24
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "session"
	}
	return nil
}
