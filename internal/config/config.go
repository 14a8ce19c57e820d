package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Env string

	// DB selects the local store backing: "sqlite" or "postgres".
	DB     string
	DBPath string
	DBDsn  string

	// RedisAddr enables the redis participant cache and presence
	// backing when set.
	RedisAddr string

	// KafkaBrokers enables the kafka change feed when set.
	KafkaBrokers string
	KafkaGroup   string

	PresenceTTL time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Env:          getenv("ENV", "development"),
		DB:           getenv("DB", "sqlite"),
		DBPath:       getenv("DB_PATH", ".tmp/mapshare.db"),
		DBDsn:        os.Getenv("DB_DSN"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaGroup:   getenv("KAFKA_GROUP", "mapshare"),
		PresenceTTL:  30 * time.Second,
	}

	if raw := os.Getenv("PRESENCE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			logrus.Warnf("invalid PRESENCE_TTL %q: %v", raw, err)
		} else {
			cfg.PresenceTTL = ttl
		}
	}

	return cfg
}

func GetDb(cfg *Config) *gorm.DB {
	var db *gorm.DB
	var err error

	switch cfg.DB {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DBDsn), &gorm.Config{})
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm); err != nil {
			logrus.Fatalf("failed to create db directory: %v", err)
		}
		db, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	}

	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}

	return db
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
