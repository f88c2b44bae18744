package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
)

const (
	DefaultPort     = 3000
	DefaultTokenTTL = 24 * time.Hour
	DefaultCacheTTL = time.Minute
)

type Config struct {
	Database pg.Options
	App      struct {
		Host           string
		Port           int
		Debug          bool
		LogQueries     bool
		// SlowQuery raises logged statements slower than this to Info.
		SlowQuery      Duration
		MigrateOnStart bool
		CORSOrigins    []string
	}
	Auth struct {
		Secret   string
		TokenTTL Duration
	}
	Cache struct {
		// RedisURL enables the public listing cache when set.
		RedisURL string
		TTL      Duration
	}
	Members struct {
		Roles []string
	}
}

// Duration decodes TOML strings like "15m" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}

	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads a TOML file. A non-empty databaseURL replaces the Database section.
func Load(path, databaseURL string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	if databaseURL != "" {
		opt, err := pg.ParseURL(databaseURL)
		if err != nil {
			return cfg, fmt.Errorf("parse database url: %w", err)
		}
		opt.PoolSize = cfg.Database.PoolSize
		opt.MaxConnAge = cfg.Database.MaxConnAge
		cfg.Database = *opt
	}

	cfg.setDefaults()

	return cfg, cfg.Validate()
}

func (c *Config) setDefaults() {
	if c.App.Host == "" {
		c.App.Host = "0.0.0.0"
	}
	if c.App.Port == 0 {
		c.App.Port = DefaultPort
	}
	if c.Auth.TokenTTL.Duration == 0 {
		c.Auth.TokenTTL.Duration = DefaultTokenTTL
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = DefaultCacheTTL
	}
	if c.Database.MaxRetries == 0 {
		c.Database.MaxRetries = 3
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Database.Addr == "" {
		errs = append(errs, errors.New("database address is required"))
	}
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("auth secret is required"))
	}
	if c.App.Port < 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.App.Port))
	}

	return errors.Join(errs...)
}
