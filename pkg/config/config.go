package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	PostStorePostgres = "postgres"
	PostStoreMongo    = "mongo"

	RealtimeNone  = "none"
	RealtimeRedis = "redis"
	RealtimeKafka = "kafka"

	defaultJWTSecret = "supersecretjwtkey"
)

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	FirebaseCredentialsPath string
	PostgresURL             string
	PostStore               string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	MetricsPort             string
	RealtimeBackend         string
	RedisAddr               string
	RedisPassword           string
	KafkaBrokers            string
	KafkaTopic              string
	OTelEndpoint            string
	OTelServiceName         string
	OTelSampleRatio         float64
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresURL:             getEnv("POSTGRES_CONN_STR", ""),
		PostStore:               strings.ToLower(getEnv("POST_STORE", PostStorePostgres)),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "socialmedia"),
		JWTSecret:               getEnv("JWT_SECRET", defaultJWTSecret),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		RealtimeBackend:         strings.ToLower(getEnv("REALTIME_BACKEND", RealtimeNone)),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:            getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:              getEnv("KAFKA_TOPIC", "notifications"),
		OTelEndpoint:            getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelServiceName:         getEnv("OTEL_SERVICE_NAME", "socialconnect-api"),
		OTelSampleRatio:         getRatio("OTEL_TRACES_SAMPLER_ARG", 1),
	}
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	if c.PostgresURL == "" {
		return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}
	switch c.PostStore {
	case PostStorePostgres:
	case PostStoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable not set")
		}
	default:
		return fmt.Errorf("unknown POST_STORE %q", c.PostStore)
	}
	switch c.RealtimeBackend {
	case RealtimeNone, RealtimeRedis, RealtimeKafka:
	default:
		return fmt.Errorf("unknown REALTIME_BACKEND %q", c.RealtimeBackend)
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Level maps LOG_LEVEL onto a gommon log level. Unknown values mean INFO.
func (c *Config) Level() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// getRatio reads a sampling ratio in [0, 1], falling back on bad input.
func getRatio(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f < 0 || f > 1 {
		return defaultValue
	}
	return f
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
