package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/athena/internal/model"
)

// DefaultPath is the config file used when neither a flag nor ATHENA_CONFIG names one.
const DefaultPath = "config/athena.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ATHENA_"

// Inventory sources.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Optimizer holds configuration shared by athena commands.
type Optimizer struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"` // debug, info, warn, error

	Character CharacterConfig  `yaml:"character" envPrefix:"CHAR_"`
	Team      model.TeamConfig `yaml:"team" envPrefix:"TEAM_"`
	Search    SearchConfig     `yaml:"search" envPrefix:"SEARCH_"`
	Inventory InventoryConfig  `yaml:"inventory" envPrefix:"INVENTORY_"`
	Database  DatabaseConfig   `yaml:"database" envPrefix:"DB_"`
	HTTP      HTTPConfig       `yaml:"http" envPrefix:"HTTP_"`
}

// CharacterConfig holds the character's base attack values.
type CharacterConfig struct {
	BaseAtk       float64 `yaml:"base_atk" env:"BASE_ATK"`
	WeaponBaseAtk float64 `yaml:"weapon_base_atk" env:"WEAPON_BASE_ATK"`
}

// SearchConfig tunes the optimizer.
type SearchConfig struct {
	Workers       int `yaml:"workers" env:"WORKERS"` // 0 = runtime.NumCPU()
	ProgressEvery int `yaml:"progress_every" env:"PROGRESS_EVERY"`
}

// EffectiveWorkers resolves Workers = 0 to the number of CPUs.
func (s SearchConfig) EffectiveWorkers() int {
	if s.Workers <= 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

// InventoryConfig selects where items are loaded from and saved to.
type InventoryConfig struct {
	Source string `yaml:"source" env:"SOURCE"`
	Path   string `yaml:"path" env:"PATH"` // YAML file or SQLite database
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// HTTPConfig holds API server settings.
type HTTPConfig struct {
	BindAddress  string        `yaml:"bind_address" env:"BIND_ADDRESS"`
	Port         int           `yaml:"port" env:"PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
}

// Addr returns host:port for net.Listen.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.BindAddress, h.Port)
}

// DefaultOptimizer returns config with the sample character and team.
func DefaultOptimizer() Optimizer {
	return Optimizer{
		LogLevel: "info",
		Character: CharacterConfig{
			BaseAtk:       605,
			WeaponBaseAtk: 908,
		},
		Team: model.TeamConfig{
			BuffAtkPct:     0.60,
			BuffAtkFlat:    540,
			BuffCritDamage: 0.23,
			BuffDmgBonus:   0.40,
		},
		Search: SearchConfig{
			Workers:       0,
			ProgressEvery: 100,
		},
		Inventory: InventoryConfig{
			Source: SourceBuiltin,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "athena",
			Password: "athena",
			DBName:   "athena",
			SSLMode:  "disable",
		},
		HTTP: HTTPConfig{
			BindAddress:  "127.0.0.1",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Path returns flagValue if set, then ATHENA_CONFIG, then DefaultPath.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// LoadOptimizer loads config from a YAML file and applies ATHENA_* environment overrides.
// If the file doesn't exist, defaults are used.
func LoadOptimizer(path string) (Optimizer, error) {
	cfg := DefaultOptimizer()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a command.
func (c Optimizer) Validate() error {
	var errs []error
	if !finite(c.Character.BaseAtk) || !finite(c.Character.WeaponBaseAtk) {
		errs = append(errs, errors.New("character base attack must be a finite number"))
	} else if c.Character.BaseAtk < 0 || c.Character.WeaponBaseAtk < 0 {
		errs = append(errs, errors.New("character base attack must not be negative"))
	}
	for _, buff := range []struct {
		name  string
		value float64
	}{
		{"buff_atk_pct", c.Team.BuffAtkPct},
		{"buff_atk_flat", c.Team.BuffAtkFlat},
		{"buff_crit_dmg", c.Team.BuffCritDamage},
		{"buff_dmg_bonus", c.Team.BuffDmgBonus},
	} {
		if !finite(buff.value) {
			errs = append(errs, fmt.Errorf("team.%s must be a finite number", buff.name))
		}
	}
	if c.Search.Workers < 0 {
		errs = append(errs, fmt.Errorf("search.workers %d must not be negative", c.Search.Workers))
	}
	if c.Search.ProgressEvery <= 0 {
		errs = append(errs, fmt.Errorf("search.progress_every %d must be positive", c.Search.ProgressEvery))
	}
	switch c.Inventory.Source {
	case SourceBuiltin, SourcePostgres:
	case SourceFile, SourceSQLite:
		if c.Inventory.Path == "" {
			errs = append(errs, fmt.Errorf("inventory.path is required for source %q", c.Inventory.Source))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown inventory.source %q", c.Inventory.Source))
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %d out of range", c.HTTP.Port))
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
