// Package config 默认值 -> yaml 配置文件 -> 环境变量，后者覆盖前者
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env   string      `yaml:"env"`
	HTTP  HTTPConfig  `yaml:"http"`
	DB    DBConfig    `yaml:"db"`
	Redis RedisConfig `yaml:"redis"`
	JWT   JWTConfig   `yaml:"jwt"`
	Kafka KafkaConfig `yaml:"kafka"`
	SMTP  SMTPConfig  `yaml:"smtp"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DBConfig struct {
	Driver       string `yaml:"driver"` // mysql / postgres / memory
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // 为空时会话存放在进程内存
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string        `yaml:"access_secret"`
	RefreshSecret string        `yaml:"refresh_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"` // 为空时事件只打日志
	Topic   string   `yaml:"topic"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

func Default() *Config {
	return &Config{
		Env: "dev",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Driver:       "mysql",
			DSN:          "user:password@tcp(127.0.0.1:3306)/groups?charset=utf8mb4&parseTime=True&loc=UTC",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			AutoMigrate:  true,
		},
		JWT: JWTConfig{
			AccessTTL:  30 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		Kafka: KafkaConfig{Topic: "groups.events"},
		SMTP:  SMTPConfig{Port: 587},
	}
}

// Load path 为空时跳过配置文件
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err = yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("APP_ENV", &c.Env)
	str("HTTP_ADDR", &c.HTTP.Addr)
	str("DB_DRIVER", &c.DB.Driver)
	str("DB_DSN", &c.DB.DSN)
	integer("DB_MAX_OPEN_CONNS", &c.DB.MaxOpenConns)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	integer("REDIS_DB", &c.Redis.DB)
	str("JWT_ACCESS_SECRET", &c.JWT.AccessSecret)
	str("JWT_REFRESH_SECRET", &c.JWT.RefreshSecret)
	duration("JWT_ACCESS_TTL", &c.JWT.AccessTTL)
	duration("JWT_REFRESH_TTL", &c.JWT.RefreshTTL)
	if v, ok := lookup("KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = splitList(v)
	}
	str("KAFKA_TOPIC", &c.Kafka.Topic)
	str("SMTP_HOST", &c.SMTP.Host)
	integer("SMTP_PORT", &c.SMTP.Port)
	str("SMTP_USERNAME", &c.SMTP.Username)
	str("SMTP_PASSWORD", &c.SMTP.Password)
	str("SMTP_FROM", &c.SMTP.From)
	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "mysql", "postgres":
		if c.DB.DSN == "" {
			return errors.New("db.dsn required")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return errors.New("jwt access/refresh secret required")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("jwt access and refresh secret must differ")
	}
	return nil
}

func (c *Config) Production() bool { return c.Env == "production" }
