package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr         string        `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
}

type Database struct {
	Host            string        `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"password" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"name" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"sslmode" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"username" env:"REDIS_USER" env-default:""`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"max_attempts" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"window_size" env:"WINDOW_SIZE" env-default:"15m"`
}

type Security struct {
	JWTKey        string        `yaml:"jwt_key" env:"JWT_KEY" env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
	AdminUsername string        `yaml:"admin_username" env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string        `yaml:"admin_password" env:"ADMIN_PASSWORD" env-required:"true"`
}

type CartConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CART_TTL" env-default:"168h"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"60s"`
}

type SendGrid struct {
	APIKey    string `yaml:"api_key" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"from_email" env:"SENDGRID_FROM_EMAIL" env-default:"noreply@mandilink.in"`
	FromName  string `yaml:"from_name" env:"SENDGRID_FROM_NAME" env-default:"MandiLink"`
}

type Gemini struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY" env-default:""`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rate_limit"`
	Security     Security     `yaml:"security"`
	Cart         CartConfig   `yaml:"cart"`
	Cache        CacheConfig  `yaml:"cache"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Gemini       Gemini       `yaml:"gemini"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the config file")
		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
