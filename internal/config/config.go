package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
	Analytics AnalyticsConfig
	LogLevel  string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers       []string
	ConsumerTopic string
	ProducerTopic string
	GroupID       string
}

// RedisConfig holds the snapshot-cache configuration
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// AnalyticsConfig holds the analytics engine constants
type AnalyticsConfig struct {
	DefaultAccountSize   float64
	InfiniteProfitFactor float64
	DefaultWeekBuckets   int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "tradejournal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ConsumerTopic: getEnv("KAFKA_CONSUMER_TOPIC", "trade-events"),
			ProducerTopic: getEnv("KAFKA_PRODUCER_TOPIC", "journal-events"),
			GroupID:       getEnv("KAFKA_GROUP_ID", "trade-journal-service"),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			TTLSeconds: getEnvInt("REDIS_SNAPSHOT_TTL_SECONDS", 60),
		},
		Analytics: AnalyticsConfig{
			DefaultAccountSize:   getEnvFloat("ANALYTICS_DEFAULT_ACCOUNT_SIZE", 10000),
			InfiniteProfitFactor: getEnvFloat("ANALYTICS_INFINITE_PROFIT_FACTOR", 999),
			DefaultWeekBuckets:   getEnvInt("ANALYTICS_DEFAULT_WEEK_BUCKETS", 8),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
