package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Order       OrderConfig
	Lock        LockConfig
	Midtrans    MidtransConfig
	RabbitMQ    RabbitMQConfig
	Internal    InternalConfig
}

type ServerConfig struct {
	Port         string
	BaseURL      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret      string
	SessionExpTime time.Duration
}

type OrderConfig struct {
	// PaymentWindow is how long a pending order waits for the gateway
	// before the reconcile consumer looks at it.
	PaymentWindow time.Duration
	// StaleAfter is the minimum age of a pending order before the sweep
	// picks it up.
	StaleAfter time.Duration
}

type LockConfig struct {
	WaitTimeout  time.Duration
	LeaseTTL     time.Duration
	PollInterval time.Duration
}

type MidtransConfig struct {
	SnapBaseURL string
	APIBaseURL  string
	ServerKey   string
	Timeout     time.Duration
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
}

type InternalConfig struct {
	APIKey string
}

// Load reads configuration from environment variables. A .env file is loaded
// first when present (local development).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			BaseURL:      getEnv("SERVER_BASE_URL", "http://localhost:8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "marketplace"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "secret"),
			SessionExpTime: getDuration("SESSION_EXP_TIME", 24*time.Hour),
		},
		Order: OrderConfig{
			PaymentWindow: getDuration("ORDER_PAYMENT_WINDOW", 30*time.Minute),
			StaleAfter:    getDuration("ORDER_STALE_AFTER", 15*time.Minute),
		},
		Lock: LockConfig{
			WaitTimeout:  getDuration("LOCK_WAIT_TIMEOUT", 10*time.Second),
			LeaseTTL:     getDuration("LOCK_LEASE_TTL", 30*time.Second),
			PollInterval: getDuration("LOCK_POLL_INTERVAL", 100*time.Millisecond),
		},
		Midtrans: MidtransConfig{
			SnapBaseURL: getEnv("MIDTRANS_SNAP_BASE_URL", "https://app.sandbox.midtrans.com/snap/v1"),
			APIBaseURL:  getEnv("MIDTRANS_API_BASE_URL", "https://api.sandbox.midtrans.com"),
			ServerKey:   getEnv("MIDTRANS_SERVER_KEY", ""),
			Timeout:     getDuration("MIDTRANS_TIMEOUT", 15*time.Second),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  getBool("RABBITMQ_ENABLED", false),
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
		Internal: InternalConfig{
			APIKey: getEnv("INTERNAL_API_KEY", ""),
		},
	}
}

// GetDSN builds the MySQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
