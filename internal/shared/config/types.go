package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host" validate:"required"`
	Port           int      `mapstructure:"port" validate:"gt=0,lte=65535"`
	Mode           string   `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the driver-specific DSN. For sqlite Database is a file path.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret" validate:"required"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// TelephonyConfig holds the outbound call provider credentials.
// Leaving AccountSID or AuthToken empty switches the notifier to demo mode.
type TelephonyConfig struct {
	BaseURL    string        `mapstructure:"base_url" validate:"omitempty,url"`
	AccountSID string        `mapstructure:"account_sid"`
	AuthToken  string        `mapstructure:"auth_token"`
	FromNumber string        `mapstructure:"from_number"`
	ToNumber   string        `mapstructure:"to_number"`
	Message    string        `mapstructure:"message"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// HasCredentials reports whether live calls can be placed.
func (t *TelephonyConfig) HasCredentials() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != "" && t.ToNumber != ""
}

type EscalationConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	Interval         time.Duration `mapstructure:"interval" validate:"gt=0"`
	DwellTime        time.Duration `mapstructure:"dwell_time" validate:"gt=0"`
	CallTimeout      time.Duration `mapstructure:"call_timeout" validate:"gt=0"`
	CycleTimeout     time.Duration `mapstructure:"cycle_timeout" validate:"gt=0"`
	Concurrency      int           `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	BatchLimit       int           `mapstructure:"batch_limit" validate:"gte=0"`
	LogRetentionDays int           `mapstructure:"log_retention_days" validate:"gte=1"`
}
