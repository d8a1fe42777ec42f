package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts "10s" style values in YAML, which yaml.v3 will not
// decode into a plain time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	td, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(td)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int      `yaml:"port"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Polygon struct {
		APIKey        string   `yaml:"api_key"`
		BaseURL       string   `yaml:"base_url"`
		Timeout       Duration `yaml:"timeout"`
		WindowPadDays int      `yaml:"window_pad_days"`
	} `yaml:"polygon"`
	CoinGecko struct {
		BaseURL       string   `yaml:"base_url"`
		QuoteCurrency string   `yaml:"quote_currency"`
		Timeout       Duration `yaml:"timeout"`
	} `yaml:"coingecko"`
	Cache struct {
		TTL   Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Detector struct {
		PriceChangePct   float64 `yaml:"price_change_pct"`
		VolumeChangePct  float64 `yaml:"volume_change_pct"`
		RiskPriceWeight  float64 `yaml:"risk_price_weight"`
		RiskVolumeWeight float64 `yaml:"risk_volume_weight"`
	} `yaml:"detector"`
	RateLimit struct {
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"ratelimit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A missing POLYGON_API_KEY is not an error: the service degrades to CoinGecko.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		c.Polygon.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = Duration(10 * time.Second)
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Polygon.BaseURL == "" {
		c.Polygon.BaseURL = "https://api.polygon.io"
	}
	if c.Polygon.Timeout <= 0 {
		c.Polygon.Timeout = Duration(15 * time.Second)
	}
	if c.Polygon.WindowPadDays <= 0 {
		c.Polygon.WindowPadDays = 2
	}
	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = "https://api.coingecko.com"
	}
	if c.CoinGecko.QuoteCurrency == "" {
		c.CoinGecko.QuoteCurrency = "usd"
	}
	if c.CoinGecko.Timeout <= 0 {
		c.CoinGecko.Timeout = Duration(15 * time.Second)
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = Duration(5 * time.Minute)
	}
	if c.Detector.PriceChangePct == 0 {
		c.Detector.PriceChangePct = 5.0
	}
	if c.Detector.VolumeChangePct == 0 {
		c.Detector.VolumeChangePct = 300.0
	}
	if c.Detector.RiskPriceWeight == 0 {
		c.Detector.RiskPriceWeight = 7.0
	}
	if c.Detector.RiskVolumeWeight == 0 {
		c.Detector.RiskVolumeWeight = 0.08
	}
	if c.RateLimit.Capacity <= 0 {
		c.RateLimit.Capacity = 5
	}
	if c.RateLimit.RefillPerSec <= 0 {
		c.RateLimit.RefillPerSec = 1
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Detector.PriceChangePct <= 0 {
		return fmt.Errorf("detector.price_change_pct must be positive")
	}
	if c.Detector.VolumeChangePct <= 0 {
		return fmt.Errorf("detector.volume_change_pct must be positive")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	return nil
}
