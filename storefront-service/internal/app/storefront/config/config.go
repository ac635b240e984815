package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const ServiceName = "storefront-service"

// Review store backends
const (
	ReviewStorePostgres = "postgres"
	ReviewStoreMongo    = "mongo"
)

// Config - все настройки витрины LotusAroma
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Session     SessionConfig
	Catalog     CatalogConfig
	Scheduler   SchedulerConfig
	Log         LogConfig
}

type ServerConfig struct {
	Host        string
	Port        string
	CORSOrigins []string
}

// DatabaseConfig - PostgreSQL: каталог и отзывы через GORM, аккаунты через pgx
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string // каталог с SQL миграциями golang-migrate
}

// MongoConfig используется только при REVIEW_STORE=mongo
type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string // storefront_events: REVIEW_CREATED, USER_REGISTERED
}

// SessionConfig - cookie сессии и подпись токена
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

type CatalogConfig struct {
	ReviewStore string        // postgres | mongo
	CacheTTL    time.Duration // TTL списков товаров в Redis
	Seed        bool          // заполнять пустой каталог демо-товарами
}

// SchedulerConfig - расписания cron задач
type SchedulerConfig struct {
	Enabled         bool
	RatingReconcile string
	CacheWarmup     string
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL value: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CATALOG_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL value: %w", err)
	}

	seed, err := strconv.ParseBool(getEnv("CATALOG_SEED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_SEED value: %w", err)
	}

	schedulerEnabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_ENABLED value: %w", err)
	}

	reviewStore := getEnv("REVIEW_STORE", ReviewStorePostgres)
	if reviewStore != ReviewStorePostgres && reviewStore != ReviewStoreMongo {
		return nil, fmt.Errorf("invalid REVIEW_STORE value: %q", reviewStore)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnv("SERVER_PORT", "5000"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5000,http://localhost:5173")),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "lotus_aroma"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "storefront-service/migrations"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "lotus_aroma"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "storefront_events"),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "lotus-aroma-secret"),
			CookieName: getEnv("SESSION_COOKIE", "lotus_session"),
			TTL:        sessionTTL,
		},
		Catalog: CatalogConfig{
			ReviewStore: reviewStore,
			CacheTTL:    cacheTTL,
			Seed:        seed,
		},
		Scheduler: SchedulerConfig{
			Enabled:         schedulerEnabled,
			RatingReconcile: getEnv("RATING_RECONCILE_SCHEDULE", "0 * * * *"),
			CacheWarmup:     getEnv("CACHE_WARMUP_SCHEDULE", "*/5 * * * *"),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
	}, nil
}

// IsProduction - cookie сессии ставится с флагом Secure
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DSN в формате libpq для GORM
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL для pgxpool
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
