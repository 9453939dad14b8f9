package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrationsPath  string `toml:"migrations_path"`
}

// DSN возвращает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig системные дефолты политики бронирования и параметры
// фоновой чистки просроченных pending
type BookingConfig struct {
	MaxAdvanceBookingDays   int `toml:"max_advance_booking_days"`
	MinDurationMinutes      int `toml:"min_duration_minutes"`
	MaxDurationMinutes      int `toml:"max_duration_minutes"`
	BufferMinutes           int `toml:"buffer_minutes"`
	MinAdvanceNoticeMinutes int `toml:"min_advance_notice_minutes"`
	PendingExpirationHours  int `toml:"pending_expiration_hours"`
	ExpireBatchSize         int `toml:"expire_batch_size"`
	SweepIntervalMinutes    int `toml:"sweep_interval_minutes"`
}

// Defaults возвращает системные дефолты политики для внедрения
// в разрешение политики
func (b BookingConfig) Defaults() domain.SystemDefaults {
	return domain.SystemDefaults{
		MaxAdvanceBookingDays:   b.MaxAdvanceBookingDays,
		MinDurationMinutes:      b.MinDurationMinutes,
		MaxDurationMinutes:      b.MaxDurationMinutes,
		BufferMinutes:           b.BufferMinutes,
		MinAdvanceNoticeMinutes: b.MinAdvanceNoticeMinutes,
		PendingExpirationHours:  b.PendingExpirationHours,
	}
}

// Load загружает конфигурацию из TOML файла и заполняет
// незаданные значения дефолтами
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.MigrationsPath == "" {
		c.Database.MigrationsPath = "migrations"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Booking.MaxAdvanceBookingDays == 0 {
		c.Booking.MaxAdvanceBookingDays = domain.DefaultMaxAdvanceBookingDays
	}
	if c.Booking.MinDurationMinutes == 0 {
		c.Booking.MinDurationMinutes = domain.DefaultMinDurationMinutes
	}
	if c.Booking.MaxDurationMinutes == 0 {
		c.Booking.MaxDurationMinutes = domain.DefaultMaxDurationMinutes
	}
	if c.Booking.BufferMinutes == 0 {
		c.Booking.BufferMinutes = domain.DefaultBufferMinutes
	}
	if c.Booking.MinAdvanceNoticeMinutes == 0 {
		c.Booking.MinAdvanceNoticeMinutes = domain.DefaultMinAdvanceNoticeMinutes
	}
	if c.Booking.PendingExpirationHours == 0 {
		c.Booking.PendingExpirationHours = domain.DefaultPendingExpirationHours
	}
	if c.Booking.ExpireBatchSize == 0 {
		c.Booking.ExpireBatchSize = domain.DefaultExpireBatchSize
	}
	if c.Booking.SweepIntervalMinutes == 0 {
		c.Booking.SweepIntervalMinutes = 10
	}
}
