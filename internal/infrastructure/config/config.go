package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/nxtrohith/Micro-Task-sub000/internal/shared/config"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/utils"
)

const envPrefix = "CIVIC"

type Config struct {
	Server      sharedConfig.ServerConfig     `mapstructure:"server"`
	Database    sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Auth        sharedConfig.AuthConfig       `mapstructure:"auth"`
	Redis       sharedConfig.RedisConfig      `mapstructure:"redis"`
	Telephony   sharedConfig.TelephonyConfig  `mapstructure:"telephony"`
	Escalation  sharedConfig.EscalationConfig `mapstructure:"escalation"`
	BizTimezone string                        `mapstructure:"biz_timezone"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (optional) and CIVIC_* environment variables.
// env overrides server.mode when it is neither empty nor "default".
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	cfg, err := load(v, env)
	if err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = cfg
	appConfigMu.Unlock()

	return cfg, nil
}

// LoadFile reads configuration from an explicit file path.
func LoadFile(path, env string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	cfg, err := load(v, env)
	if err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = cfg
	appConfigMu.Unlock()

	return cfg, nil
}

func load(v *viper.Viper, env string) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every section against its struct tags.
func (c *Config) Validate() error {
	sections := []struct {
		name  string
		value any
	}{
		{"server", &c.Server},
		{"database", &c.Database},
		{"auth.jwt", &c.Auth.JWT},
		{"telephony", &c.Telephony},
		{"escalation", &c.Escalation},
	}
	for _, section := range sections {
		if err := utils.ValidateStruct(section.value); err != nil {
			return fmt.Errorf("invalid %s config: %w", section.name, err)
		}
	}
	return nil
}

// Get returns the last loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "civicpulse.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.access_exp_minutes", 60)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("telephony.base_url", "https://api.twilio.com")
	v.SetDefault("telephony.account_sid", "")
	v.SetDefault("telephony.auth_token", "")
	v.SetDefault("telephony.from_number", "")
	v.SetDefault("telephony.to_number", "")
	v.SetDefault("telephony.message", "An urgent civic issue has been waiting for review for more than five minutes. Please check the admin dashboard.")
	v.SetDefault("telephony.timeout", "15s")

	v.SetDefault("escalation.enabled", true)
	v.SetDefault("escalation.interval", "1m")
	v.SetDefault("escalation.dwell_time", "5m")
	v.SetDefault("escalation.call_timeout", "30s")
	v.SetDefault("escalation.cycle_timeout", "5m")
	v.SetDefault("escalation.concurrency", 4)
	v.SetDefault("escalation.batch_limit", 0)
	v.SetDefault("escalation.log_retention_days", 90)

	v.SetDefault("biz_timezone", "UTC")
}
