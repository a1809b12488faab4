package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// Service
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"habitual"`

	// PostgreSQL
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"habitual"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"habitual"`

	// RabbitMQ
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT
	JWTSecret        string `env:"JWT_SECRET"` // required, signs API tokens
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// Matrix notification channel
	MatrixHomeserverURL string `env:"MATRIX_HOMESERVER_URL" envDefault:"https://matrix.org"`
	MatrixAccessToken   string `env:"MATRIX_ACCESS_TOKEN"`
	MatrixProvider      string `env:"MATRIX_PROVIDER" envDefault:"rest"` // rest, mock
	MatrixSendTimeoutMS int    `env:"MATRIX_SEND_TIMEOUT_MS" envDefault:"10000"`

	// Password hashing
	PasswordHashSalt string `env:"PASSWORD_HASH_SALT"`

	// Notification window defaults, applied when a user row leaves them blank
	DefaultNotifyWindowStart string `env:"DEFAULT_NOTIFY_WINDOW_START" envDefault:"00:00"`
	DefaultNotifyWindowEnd   string `env:"DEFAULT_NOTIFY_WINDOW_END" envDefault:"24:00"`

	// Scheduler
	ReconcileAtMinute int `env:"RECONCILE_AT_MINUTE" envDefault:"5"` // minutes past midnight
	NotifySweepSec    int `env:"NOTIFY_SWEEP_SECONDS" envDefault:"60"`

	// Snowflake ID generator
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// Logging
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// Tracing
	OTLPEndpoint string `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`

	// Rate limiting, consumed by middleware
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	// Hard requirements only bind in production; development and tests
	// fall back to insecure local defaults.
	if Cfg.JWTSecret == "" {
		if Cfg.IsProduction() {
			log.Fatal("JWT_SECRET is required")
		}
		log.Printf("WARN: JWT_SECRET is not set, using an insecure development secret")
		Cfg.JWTSecret = "insecure-dev-jwt-secret"
	}

	if Cfg.PasswordHashSalt == "" {
		if Cfg.IsProduction() {
			log.Fatal("PASSWORD_HASH_SALT is required")
		}
		log.Printf("WARN: PASSWORD_HASH_SALT is not set, using an insecure development salt")
		Cfg.PasswordHashSalt = "insecure-dev-salt"
	}

	if Cfg.MatrixAccessToken == "" {
		log.Printf("WARN: MATRIX_ACCESS_TOKEN is not set, notifications will not be delivered")
	}
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
