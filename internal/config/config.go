package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config se construye una sola vez al arrancar y se pasa explícitamente a
// los constructores. Nadie más lee variables de entorno.
type Config struct {
	Env             string        `yaml:"env" env:"APP_ENV" env-default:"development"`
	HTTPPort        string        `yaml:"http_port" env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
	MaxUploadMB     int64         `yaml:"max_upload_mb" env:"MAX_UPLOAD_MB" env-default:"5"`

	DB       DB       `yaml:"db"`
	JWT      JWT      `yaml:"jwt"`
	Security Security `yaml:"security"`
	Redis    Redis    `yaml:"redis"`
	Kafka    Kafka    `yaml:"kafka"`
	Outbox   Outbox   `yaml:"outbox"`
	S3       S3       `yaml:"s3"`
	Mail     Mail     `yaml:"mail"`
}

type DB struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	URL    string `yaml:"url" env:"DATABASE_URL" env-default:"file:academylab.db?_pragma=foreign_keys(1)"`
}

type JWT struct {
	AccessSecret  string        `yaml:"access_secret" env:"JWT_ACCESS_SECRET" env-required:"true"`
	RefreshSecret string        `yaml:"refresh_secret" env:"JWT_REFRESH_SECRET" env-required:"true"`
	AccessTTL     time.Duration `yaml:"access_ttl" env:"JWT_ACCESS_TTL" env-default:"1h"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl" env:"JWT_REFRESH_TTL" env-default:"2160h"`
}

type Security struct {
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"12"`
	OTPTTL     time.Duration `yaml:"otp_ttl" env:"OTP_TTL" env-default:"300s"`
}

type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Username string        `yaml:"username" env:"REDIS_USERNAME"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" env-default:"5m"`
}

type Kafka struct {
	Enabled bool     `yaml:"enabled" env:"USE_KAFKA" env-default:"false"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"academylab-notifications"`
}

type Outbox struct {
	Period time.Duration `yaml:"period" env:"OUTBOX_PERIOD" env-default:"1s"`
	Limit  int           `yaml:"limit" env:"OUTBOX_LIMIT" env-default:"10"`
}

type S3 struct {
	Bucket        string `yaml:"bucket" env:"S3_BUCKET"`
	Region        string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey     string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	UsePathStyle  bool   `yaml:"use_path_style" env:"S3_USE_PATH_STYLE" env-default:"false"`
}

type Mail struct {
	ResendAPIKey string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	From         string `yaml:"from" env:"MAIL_FROM" env-default:"Future Programmer Innovators Club <no-reply@example.com>"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load lee CONFIG_PATH (YAML o .env) si existe; si no, sólo el entorno.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

// MustLoad termina el proceso si la configuración no es válida.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
