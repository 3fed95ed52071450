package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Port() string {
	return getenv("PORT", "8080")
}

// BaseURL is the public URL encoded into table QR links.
func BaseURL() string {
	return getenv("BASE_URL", "https://restaurant.com")
}

// StoreDriver selects the persistence backend: file, redis or postgres.
func StoreDriver() string {
	return getenv("STORE_DRIVER", "file")
}

func StorePath() string {
	return getenv("STORE_PATH", "./data/tableside.json")
}

func KafkaBroker() string {
	return os.Getenv("KAFKA_BROKER")
}

// PollInterval is how often order views refresh from the store.
func PollInterval() time.Duration {
	return durationEnv("POLL_INTERVAL_SECONDS", 5*time.Second)
}

// PaymentDelay simulates the wait on a payment gateway during checkout.
func PaymentDelay() time.Duration {
	return durationEnv("PAYMENT_DELAY_SECONDS", 2*time.Second)
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		log.Printf("[config] invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getenv("REDIS_HOST", "localhost") + ":" + getenv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{KafkaBroker()},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(KafkaBroker()),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
