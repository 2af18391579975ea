package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full environment-derived configuration. Database and
// collection identifiers are opaque: the code never assumes anything about
// them beyond routing documents to the right place.
type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	// EncryptionKey is the hex-encoded AES key behind shareable account IDs.
	EncryptionKey string `env:"ENCRYPTION_KEY"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Aggregator AggregatorConfig
	Payments   PaymentsConfig
}

type MongoConfig struct {
	URI               string `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database          string `env:"MONGO_DB,           default=horizon"`
	UserCollection    string `env:"USER_COLLECTION,    default=users"`
	BankCollection    string `env:"BANK_COLLECTION,    default=banks"`
	AccountCollection string `env:"ACCOUNT_COLLECTION, default=accounts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AggregatorConfig struct {
	BaseURL  string `env:"AGGREGATOR_BASE_URL, default=https://sandbox.plaid.com"`
	ClientID string `env:"AGGREGATOR_CLIENT_ID"`
	Secret   string `env:"AGGREGATOR_SECRET"`
}

type PaymentsConfig struct {
	BaseURL string `env:"PAYMENTS_BASE_URL, default=https://api-sandbox.dwolla.com"`
	Key     string `env:"PAYMENTS_KEY"`
	Secret  string `env:"PAYMENTS_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
