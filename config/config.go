package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log        Logger          `mapstructure:"logger"`
	DB         Database        `mapstructure:"database"`
	API        API             `mapstructure:"api"`
	Cache      Cache           `mapstructure:"cache"`
	Simulation Simulation      `mapstructure:"simulation"`
	Backtest   Backtest        `mapstructure:"backtest"`
	Reference  ReferenceSource `mapstructure:"reference"`
	Scheduler  Scheduler       `mapstructure:"scheduler"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// Simulation holds the default parameters of the price-path generator.
type Simulation struct {
	NewsChance     float64 `mapstructure:"news_chance"`
	DriftMinDays   int     `mapstructure:"drift_min_days"`
	DriftMaxDays   int     `mapstructure:"drift_max_days"`
	MagnitudeScale float64 `mapstructure:"magnitude_scale"`
}

// Backtest holds the defaults applied when a request leaves them unset.
type Backtest struct {
	Fees            float64       `mapstructure:"fees"`
	Amount          float64       `mapstructure:"amount"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type ReferenceSource struct {
	BaseURL          string        `mapstructure:"base_url"`
	BaseTimeout      time.Duration `mapstructure:"base_timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

type Scheduler struct {
	Jobs []ScheduledBacktest `mapstructure:"jobs"`
}

// ScheduledBacktest is a backtest run periodically by the cron scheduler.
type ScheduledBacktest struct {
	Name          string    `mapstructure:"name"`
	Cron          string    `mapstructure:"cron"`
	Strategy      string    `mapstructure:"strategy"`
	Days          int       `mapstructure:"days"`
	InitialPrices []float64 `mapstructure:"initial_prices"`
	Volatilities  []float64 `mapstructure:"volatilities"`
	Seed          int64     `mapstructure:"seed"`
}

func Load() (*Config, error) {
	// .env is optional, environment variables win either way.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)

	viper.SetDefault("cache.default_expiration", 10*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 15*time.Minute)

	viper.SetDefault("simulation.news_chance", 0.5)
	viper.SetDefault("simulation.drift_min_days", 3)
	viper.SetDefault("simulation.drift_max_days", 15)
	viper.SetDefault("simulation.magnitude_scale", 2.0)

	viper.SetDefault("backtest.fees", 20.0)
	viper.SetDefault("backtest.amount", 5000.0)
	viper.SetDefault("backtest.max_concurrency", 4)
	viper.SetDefault("backtest.timeout_duration", 2*time.Minute)

	viper.SetDefault("reference.base_timeout", 30*time.Second)
	viper.SetDefault("reference.max_request_per_min", 30)
}
