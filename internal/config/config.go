package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bazaarnow/marketplace/internal/models"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	// DatabaseURL selects postgres; when empty the service falls back
	// to a local sqlite file at SQLitePath.
	DatabaseURL string
	SQLitePath  string

	JWTSecret []byte

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string

	PaymentDelay time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	cfg := &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "marketplace"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  EnvDefault("SQLITE_PATH", "bazaarnow.db"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		PaymentDelay: time.Duration(EnvIntDefault("PAYMENT_DELAY_MS", 4500)) * time.Millisecond,
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// InitDB opens postgres when DATABASE_URL is set, otherwise a local
// sqlite file, and migrates the tables the service owns.
func (c *Config) InitDB() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if c.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(c.DatabaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(c.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.StateBlob{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
