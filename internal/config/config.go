package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Business        BusinessConfig        `toml:"business"`
	StaffService    StaffServiceConfig    `toml:"staff_service"`
	CustomerService CustomerServiceConfig `toml:"customer_service"`
	Redis           RedisConfig           `toml:"redis"`
	Workers         WorkersConfig         `toml:"workers"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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
}

// DSN возвращает строку подключения к базе данных
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

// BusinessConfig настройки бизнеса.
// Timezone задает единую тайм-зону, в которой трактуются расписания,
// отгулы и даты бронирований.
type BusinessConfig struct {
	Timezone string `toml:"timezone"`
}

// StaffServiceConfig настройки клиента справочника персонала.
// Timeout в секундах, RPS ограничивает частоту исходящих запросов.
type StaffServiceConfig struct {
	URL     string  `toml:"url"`
	Timeout int     `toml:"timeout"`
	RPS     float64 `toml:"rps"`
}

// CustomerServiceConfig настройки клиента справочника клиентов (таймаут в секундах)
type CustomerServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// RedisConfig настройки кеша ответов справочника
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	CacheTTL int    `toml:"cache_ttl"`
}

// WorkersConfig настройки фоновых задач.
// CompletionSchedule задается в cron-формате.
type WorkersConfig struct {
	CompletionSchedule string `toml:"completion_schedule"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate проверяет обязательные параметры и подставляет умолчания
func (c *Config) validate() error {
	if c.Server.HTTPPort == 0 {
		return fmt.Errorf("server.http_port is required")
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}

	if c.StaffService.URL == "" {
		return fmt.Errorf("staff_service.url is required")
	}

	if c.CustomerService.URL == "" {
		return fmt.Errorf("customer_service.url is required")
	}

	if c.Business.Timezone == "" {
		c.Business.Timezone = "UTC"
	}

	if c.StaffService.RPS <= 0 {
		c.StaffService.RPS = 10
	}

	if c.Workers.CompletionSchedule == "" {
		c.Workers.CompletionSchedule = "@every 5m"
	}

	return nil
}
