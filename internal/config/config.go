package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих конфиг
const EnvPrefix = "SMC"

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Assignment    AssignmentConfig    `toml:"assignment"`
	Notifications NotificationsConfig `toml:"notifications"`
	Scheduler     SchedulerConfig     `toml:"scheduler"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// AssignmentConfig параметры подбора партнёров
type AssignmentConfig struct {
	MaxRadiusKm        float64 `toml:"max_radius_km" split_words:"true"`
	JobDurationMinutes int     `toml:"job_duration_minutes" split_words:"true"`
	BulkBatchSize      int     `toml:"bulk_batch_size" split_words:"true"`
}

// NotificationsConfig настройки доставки уведомлений
type NotificationsConfig struct {
	QueueSize      int            `toml:"queue_size" split_words:"true"`
	DeliverTimeout int            `toml:"deliver_timeout" split_words:"true"`
	RabbitMQ       RabbitMQConfig `toml:"rabbitmq"`
	Push           PushConfig     `toml:"push"`
}

// RabbitMQConfig publisher событий уведомлений
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// PushConfig внешний push-шлюз
type PushConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulerConfig периодические задачи
type SchedulerConfig struct {
	AssignPendingEnabled         bool `toml:"assign_pending_enabled" split_words:"true"`
	AssignPendingIntervalMinutes int  `toml:"assign_pending_interval_minutes" split_words:"true"`
}

// Load читает TOML файл, применяет переменные окружения SMC_* и значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	setDefaultInt(&c.Server.HTTPPort, 8080)
	setDefaultInt(&c.Server.ReadTimeout, 15)
	setDefaultInt(&c.Server.WriteTimeout, 15)
	setDefaultInt(&c.Server.IdleTimeout, 60)
	setDefaultInt(&c.Server.ShutdownTimeout, 10)

	setDefaultString(&c.Database.Host, "localhost")
	setDefaultInt(&c.Database.Port, 5432)
	setDefaultString(&c.Database.SSLMode, "disable")
	setDefaultInt(&c.Database.MaxOpenConns, 25)
	setDefaultInt(&c.Database.MaxIdleConns, 5)
	setDefaultInt(&c.Database.ConnMaxLifetime, 300)

	setDefaultString(&c.Logs.Level, "info")

	setDefaultString(&c.Metrics.Path, "/metrics")
	setDefaultString(&c.Metrics.ServiceName, "smc-partner-assignment")

	if c.Assignment.MaxRadiusKm == 0 {
		c.Assignment.MaxRadiusKm = domain.DefaultMaxRadiusKm
	}
	setDefaultInt(&c.Assignment.JobDurationMinutes, domain.DefaultJobDurationMinutes)
	setDefaultInt(&c.Assignment.BulkBatchSize, 100)

	setDefaultInt(&c.Notifications.QueueSize, 1024)
	setDefaultInt(&c.Notifications.DeliverTimeout, 5)
	setDefaultString(&c.Notifications.RabbitMQ.Exchange, "smc.notifications")
	setDefaultInt(&c.Notifications.Push.Timeout, 5)

	setDefaultInt(&c.Scheduler.AssignPendingIntervalMinutes, 5)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.user and database.dbname are required", ErrInvalidConfig)
	}
	if c.Assignment.MaxRadiusKm <= 0 || c.Assignment.MaxRadiusKm > domain.MaxSearchRadiusKm {
		return fmt.Errorf("%w: assignment.max_radius_km must be in (0, %.0f]", ErrInvalidConfig, domain.MaxSearchRadiusKm)
	}
	if c.Assignment.JobDurationMinutes <= 0 || c.Assignment.JobDurationMinutes > domain.MaxJobDurationMinutes {
		return fmt.Errorf("%w: assignment.job_duration_minutes must be in 1..%d", ErrInvalidConfig, domain.MaxJobDurationMinutes)
	}
	if c.Assignment.BulkBatchSize <= 0 {
		return fmt.Errorf("%w: assignment.bulk_batch_size must be positive", ErrInvalidConfig)
	}
	if c.Notifications.QueueSize <= 0 {
		return fmt.Errorf("%w: notifications.queue_size must be positive", ErrInvalidConfig)
	}
	if c.Notifications.RabbitMQ.Enabled && c.Notifications.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: notifications.rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	if c.Notifications.Push.Enabled && c.Notifications.Push.URL == "" {
		return fmt.Errorf("%w: notifications.push.url is required when push is enabled", ErrInvalidConfig)
	}
	if c.Scheduler.AssignPendingIntervalMinutes <= 0 {
		return fmt.Errorf("%w: scheduler.assign_pending_interval_minutes must be positive", ErrInvalidConfig)
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// JobDuration длительность одной работы партнёра
func (a AssignmentConfig) JobDuration() time.Duration {
	return time.Duration(a.JobDurationMinutes) * time.Minute
}

// Interval период запуска массового назначения
func (s SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.AssignPendingIntervalMinutes) * time.Minute
}

func setDefaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setDefaultString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
