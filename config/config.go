package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config application-wide configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Feature  FeatureConfig  `mapstructure:"feature"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BaseURL   string     `mapstructure:"base_url"`
	BodyLimit int64      `mapstructure:"body_limit"` // bytes
	CORS      CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis settings. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScheduleConfig service-day rotation settings
type ScheduleConfig struct {
	// AnchorDate a Tuesday known to belong to cycle A, "2006-01-02"
	AnchorDate string `mapstructure:"anchor_date"`
	// Timezone used to resolve "today" when a caller omits the date
	Timezone string         `mapstructure:"timezone"`
	Rotation RotationConfig `mapstructure:"rotation"`
	// Holidays fallback table per year, used when the holidays table has no rows for the year
	Holidays     map[string][]string `mapstructure:"holidays"`
	CloseLockTTL time.Duration       `mapstructure:"close_lock_ttl"`
}

// RotationConfig group names per rotation slot
type RotationConfig struct {
	TuesdayA  string `mapstructure:"tuesday_a"`
	TuesdayB  string `mapstructure:"tuesday_b"`
	ThursdayA string `mapstructure:"thursday_a"`
	ThursdayB string `mapstructure:"thursday_b"`
}

// UploadConfig photo upload settings
type UploadConfig struct {
	Dir     string `mapstructure:"dir"`
	MaxSize int64  `mapstructure:"max_size"` // bytes
}

// FeatureConfig feature switches
type FeatureConfig struct {
	AutoCloseEnabled bool   `mapstructure:"auto_close_enabled"`
	AutoCloseCron    string `mapstructure:"auto_close_cron"`
}

// Location resolves the schedule timezone, UTC when unset or unknown.
func (c *ScheduleConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Anchor parses AnchorDate as a UTC calendar date.
func (c *ScheduleConfig) Anchor() (time.Time, error) {
	return time.Parse("2006-01-02", c.AnchorDate)
}

// Load reads configuration from file and environment.
// Precedence: environment > config file > defaults
func Load(path string) (*Config, error) {
	// a missing .env is fine, the environment may be set directly
	_ = godotenv.Load()

	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.body_limit", 10<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "caritas")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("schedule.anchor_date", "2026-02-03")
	v.SetDefault("schedule.timezone", "America/Caracas")
	v.SetDefault("schedule.rotation.tuesday_a", "Fe")
	v.SetDefault("schedule.rotation.tuesday_b", "Caridad")
	v.SetDefault("schedule.rotation.thursday_a", "Esperanza")
	v.SetDefault("schedule.rotation.thursday_b", "Amor")
	v.SetDefault("schedule.holidays", map[string][]string{"2026": DefaultHolidays2026})
	v.SetDefault("schedule.close_lock_ttl", "30s")

	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.max_size", 5<<20)

	v.SetDefault("feature.auto_close_enabled", false)
	v.SetDefault("feature.auto_close_cron", "0 20 * * 2,4")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("CARITAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks critical settings
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be within 1-65535")
	}
	anchor, err := c.Schedule.Anchor()
	if err != nil {
		return fmt.Errorf("invalid config: schedule.anchor_date: %w", err)
	}
	if anchor.Weekday() != time.Tuesday {
		return fmt.Errorf("invalid config: schedule.anchor_date %s is not a Tuesday", c.Schedule.AnchorDate)
	}
	r := c.Schedule.Rotation
	if r.TuesdayA == "" || r.TuesdayB == "" || r.ThursdayA == "" || r.ThursdayB == "" {
		return fmt.Errorf("invalid config: schedule.rotation requires all four group names")
	}
	for year, dates := range c.Schedule.Holidays {
		for _, d := range dates {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return fmt.Errorf("invalid config: schedule.holidays.%s: %q is not a date", year, d)
			}
		}
	}
	return nil
}

// DefaultHolidays2026 national holidays observed by the parish in 2026
var DefaultHolidays2026 = []string{
	"2026-01-01",
	"2026-02-16",
	"2026-02-17",
	"2026-03-19",
	"2026-04-02",
	"2026-04-03",
	"2026-04-19",
	"2026-05-01",
	"2026-06-24",
	"2026-07-05",
	"2026-07-24",
	"2026-10-12",
	"2026-12-24",
	"2026-12-25",
	"2026-12-31",
}
