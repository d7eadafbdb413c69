package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envFile = ".env"

type Config struct {
	HTTPPort   string `yaml:"http_port"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`
	JWTSecret  string `yaml:"jwt_secret"`
	LogLevel   string `yaml:"log_level"`

	KafkaBrokers          string `yaml:"kafka_brokers"`
	KafkaOrderEventsTopic string `yaml:"kafka_order_events_topic"`
	OutboxRelaySchedule   string `yaml:"outbox_relay_schedule"`
	OutboxBatchSize       int    `yaml:"outbox_batch_size"`
}

func DefaultConfig() Config {
	return Config{
		HTTPPort:              "8080",
		DBHost:                "localhost",
		DBPort:                "5432",
		DBUser:                "postgres",
		DBName:                "laundry",
		DBSslMode:             "disable",
		LogLevel:              "info",
		KafkaOrderEventsTopic: "laundry.order-events",
		OutboxRelaySchedule:   "*/5 * * * * *",
		OutboxBatchSize:       100,
	}
}

// LoadConfig layers defaults, the YAML file at path, a .env file in the
// working directory and finally the process environment. Missing files are
// skipped.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			if err = yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	for key, dest := range map[string]*string{
		"HTTP_PORT":                &c.HTTPPort,
		"DB_HOST":                  &c.DBHost,
		"DB_PORT":                  &c.DBPort,
		"DB_USER":                  &c.DBUser,
		"DB_PASSWORD":              &c.DBPassword,
		"DB_NAME":                  &c.DBName,
		"DB_SSLMODE":               &c.DBSslMode,
		"JWT_SECRET":               &c.JWTSecret,
		"LOG_LEVEL":                &c.LogLevel,
		"KAFKA_BROKERS":            &c.KafkaBrokers,
		"KAFKA_ORDER_EVENTS_TOPIC": &c.KafkaOrderEventsTopic,
		"OUTBOX_RELAY_SCHEDULE":    &c.OutboxRelaySchedule,
	} {
		if value, ok := os.LookupEnv(key); ok {
			*dest = value
		}
	}

	if raw, ok := os.LookupEnv("OUTBOX_BATCH_SIZE"); ok {
		size, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("OUTBOX_BATCH_SIZE: %w", err)
		}
		c.OutboxBatchSize = size
	}
	return nil
}

func (c Config) Validate() error {
	var problems []error
	if strings.TrimSpace(c.DBHost) == "" {
		problems = append(problems, errors.New("db host is required"))
	}
	if strings.TrimSpace(c.DBName) == "" {
		problems = append(problems, errors.New("db name is required"))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		problems = append(problems, errors.New("jwt secret is required"))
	}
	for name, port := range map[string]string{"http port": c.HTTPPort, "db port": c.DBPort} {
		if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
			problems = append(problems, fmt.Errorf("%s %q is not a valid port", name, port))
		}
	}
	if c.OutboxBatchSize <= 0 {
		problems = append(problems, fmt.Errorf("outbox batch size must be positive, got %d", c.OutboxBatchSize))
	}
	return errors.Join(problems...)
}

// DSN renders the connection string understood by the postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, dsnValue(c.DBPassword), c.DBName, c.DBSslMode)
}

func (c Config) ListenAddr() string {
	return "0.0.0.0:" + c.HTTPPort
}

// dsnValue quotes values that contain spaces or quotes.
func dsnValue(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}

// redacted is what gets logged at startup.
func (c Config) redacted() map[string]string {
	return map[string]string{
		"http_port":     c.HTTPPort,
		"db":            (&url.URL{Scheme: "postgres", Host: c.DBHost + ":" + c.DBPort, Path: c.DBName}).String(),
		"kafka_brokers": c.KafkaBrokers,
		"topic":         c.KafkaOrderEventsTopic,
		"log_level":     c.LogLevel,
	}
}
