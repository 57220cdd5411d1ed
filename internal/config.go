package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Core          CoreConfig          `mapstructure:"core" validate:"required"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
	Source          string        `mapstructure:"source"`
}

// CoreConfig holds the recognition-to-attendance pipeline's own tunables —
// the options spec'd against the business domain rather than transport or
// storage. DedupWindowSeconds is validated but not read by the pipeline:
// fingerprint bucketing always uses the fixed fingerprint.Window (300 s).
type CoreConfig struct {
	BusinessZone          string        `mapstructure:"business_zone" validate:"required"`
	DedupWindowSeconds    int           `mapstructure:"dedup_window_seconds" validate:"required,min=1"`
	MinSimilarity         float64       `mapstructure:"min_similarity" validate:"min=0,max=1"`
	CooldownSerialization string        `mapstructure:"cooldown_serialization" validate:"required,oneof=per_employee_lock in_transaction_recheck"`
	IngestDeadline        time.Duration `mapstructure:"ingest_deadline" validate:"required,min=100ms"`
	ShardCount            int           `mapstructure:"shard_count" validate:"min=1"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ServiceName  string  `mapstructure:"service_name" validate:"required_if=Enabled true"`
	SamplingRate float64 `mapstructure:"sampling_rate" validate:"min=0,max=1"`
	JaegerURL    string  `mapstructure:"jaeger_url" validate:"required_if=Enabled true,url"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- DEFAULTS -----------------

// CooldownSerializationPerEmployeeLock and CooldownSerializationRecheck are
// the two concurrency strategies spec'd for cooldown enforcement under
// concurrent ingests for the same employee.
const (
	CooldownSerializationPerEmployeeLock = "per_employee_lock"
	CooldownSerializationRecheck         = "in_transaction_recheck"
)

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		BusinessZone:          "Asia/Dhaka",
		DedupWindowSeconds:    300,
		MinSimilarity:         0.60,
		CooldownSerialization: CooldownSerializationPerEmployeeLock,
		IngestDeadline:        5 * time.Second,
		ShardCount:            64,
	}
}

// LoadConfigFromEnv builds a Config purely from environment variables, for
// container deployments that don't mount a config.yml (APP_ENV=production
// or DOCKER_ENV=true, checked by the caller in cmd.loadConfig).
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:           getEnv("SERVER_BASE_URL", ""),
			AllowedOrigins:    getEnv("SERVER_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			IdleTimeout:       getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DB_SOURCE", ""),
		},
		Core: CoreConfig{
			BusinessZone:          getEnv("CORE_BUSINESS_ZONE", "Asia/Dhaka"),
			DedupWindowSeconds:    getEnvAsInt("CORE_DEDUP_WINDOW_SECONDS", 300),
			MinSimilarity:         getEnvAsFloat("CORE_MIN_SIMILARITY", 0.60),
			CooldownSerialization: getEnv("CORE_COOLDOWN_SERIALIZATION", CooldownSerializationPerEmployeeLock),
			IngestDeadline:        getEnvAsDuration("CORE_INGEST_DEADLINE", 5*time.Second),
			ShardCount:            getEnvAsInt("CORE_SHARD_COUNT", 64),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Core.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("core config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *CoreConfig) Validate() error {
	if c.BusinessZone == "" {
		return errors.New("business_zone is required")
	}
	if c.DedupWindowSeconds <= 0 {
		return errors.New("dedup_window_seconds must be positive")
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return errors.New("min_similarity must be within [0, 1]")
	}
	switch c.CooldownSerialization {
	case CooldownSerializationPerEmployeeLock, CooldownSerializationRecheck:
	default:
		return fmt.Errorf("unknown cooldown_serialization %q", c.CooldownSerialization)
	}
	if c.IngestDeadline <= 0 {
		return errors.New("ingest_deadline must be positive")
	}
	return nil
}
