package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

func (j JWT) TTL() time.Duration { return time.Duration(j.AccessTokenTTLMin) * time.Minute }

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Cache struct {
	Enabled bool
	TTLSec  int
	Prefix  string
}

func (c Cache) TTL() time.Duration { return time.Duration(c.TTLSec) * time.Second }

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	Migrations         string // gorm | sql
	LogLevel           string
}

type Limits struct {
	RPS          float64
	Burst        int
	PerIPRPS     float64
	PerIPBurst   int
	Concurrency  int64
	MaxBodyBytes int64
	TimeoutSec   int
}

func (l Limits) Timeout() time.Duration { return time.Duration(l.TimeoutSec) * time.Second }

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Cache  Cache
	Limits Limits
}

// Load reads path (or $CONFIG_PATH, or ./configs/config.local.yaml).
// APP_* environment variables override file values, e.g. APP_DB_DSN.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func MustLoad(path string) *Config {
	c, err := Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}

func (c *Config) applyDefaults() {
	setStr(&c.App.Name, "go-gin-blog")
	setStr(&c.App.Env, "local")
	setInt(&c.App.HTTP.Port, 8080)
	setInt(&c.App.HTTP.ReadTimeoutSec, 5)
	setInt(&c.App.HTTP.WriteTimeoutSec, 10)
	setInt(&c.App.HTTP.IdleTimeoutSec, 60)
	setInt(&c.App.Admin.Port, 8081)

	setStr(&c.Log.Level, "info")
	setInt(&c.Log.File.MaxSizeMB, 100)
	setInt(&c.Log.File.MaxBackups, 7)
	setInt(&c.Log.File.MaxAgeDays, 30)

	setStr(&c.JWT.Issuer, c.App.Name)
	setInt(&c.JWT.AccessTokenTTLMin, 120)

	setStr(&c.DB.Driver, "sqlite")
	setStr(&c.DB.Migrations, "gorm")
	setStr(&c.DB.LogLevel, "warn")
	setInt(&c.DB.MaxOpenConns, 20)
	setInt(&c.DB.MaxIdleConns, 10)
	setInt(&c.DB.ConnMaxLifetimeMin, 30)

	setInt(&c.Cache.TTLSec, 60)
	setStr(&c.Cache.Prefix, "blog:articles")

	if c.Limits.RPS <= 0 {
		c.Limits.RPS = 200
	}
	setInt(&c.Limits.Burst, 400)
	if c.Limits.PerIPRPS <= 0 {
		c.Limits.PerIPRPS = 20
	}
	setInt(&c.Limits.PerIPBurst, 40)
	if c.Limits.Concurrency <= 0 {
		c.Limits.Concurrency = 300
	}
	if c.Limits.MaxBodyBytes <= 0 {
		c.Limits.MaxBodyBytes = 1 << 20
	}
	setInt(&c.Limits.TimeoutSec, 10)
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("db.driver %q: want postgres, mysql or sqlite", c.DB.Driver)
	}
	switch c.DB.Migrations {
	case "gorm", "sql":
	default:
		return fmt.Errorf("db.migrations %q: want gorm or sql", c.DB.Migrations)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db.dsn is required")
	}
	return nil
}

func setStr(p *string, def string) {
	if *p == "" {
		*p = def
	}
}

func setInt(p *int, def int) {
	if *p <= 0 {
		*p = def
	}
}
