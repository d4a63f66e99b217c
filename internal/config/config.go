package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config полная конфигурация сервиса
type Config struct {
	Server     Server     `toml:"server"`
	Database   Database   `toml:"database"`
	Logs       Logs       `toml:"logs"`
	Metrics    Metrics    `toml:"metrics"`
	Schedule   Schedule   `toml:"schedule"`
	MemberAPI  MemberAPI  `toml:"member_api"`
	AccessCard AccessCard `toml:"access_card"`
	Mail       Mail       `toml:"mail"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
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

// DSN собирает строку подключения к базе данных
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки Prometheus метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Schedule настройки клиента внешнего календаря
type Schedule struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// MemberAPI настройки клиента сервиса участников клуба
type MemberAPI struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// AccessCard настройки клиента системы карт доступа
type AccessCard struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Mail настройки клиента почтового шлюза
type Mail struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Schedule.URL == "" {
		return fmt.Errorf("schedule.url is required")
	}
	if c.MemberAPI.URL == "" {
		return fmt.Errorf("member_api.url is required")
	}
	if c.AccessCard.URL == "" {
		return fmt.Errorf("access_card.url is required")
	}
	if c.Mail.URL == "" {
		return fmt.Errorf("mail.url is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	return nil
}
