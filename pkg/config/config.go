package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ShiblySohaib/wfmarket/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		RateLimit struct {
			MaxRequests int           `yaml:"max_requests"`
			Window      time.Duration `yaml:"window"`
		} `yaml:"rate_limit"`
	} `yaml:"market"`
	Fetch struct {
		FirstPassWorkers int           `yaml:"first_pass_workers"`
		RetryWorkers     int           `yaml:"retry_workers"`
		MaxRetryPasses   int           `yaml:"max_retry_passes"`
		RetryCooldown    time.Duration `yaml:"retry_cooldown"`
		TopOrdersPerItem int           `yaml:"top_orders_per_item"`
	} `yaml:"fetch"`
	Progress struct {
		Backend string        `yaml:"backend"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"progress"`
	Inventory struct {
		ItemsFile    string `yaml:"items_file"`
		BalancesFile string `yaml:"balances_file"`
	} `yaml:"inventory"`
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

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("WFM_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv("WFM_ITEMS_FILE"); v != "" {
		c.Inventory.ItemsFile = v
	}
	if v := os.Getenv("WFM_BALANCES_FILE"); v != "" {
		c.Inventory.BalancesFile = v
	}
	if v := os.Getenv("WFM_PROGRESS_BACKEND"); v != "" {
		c.Progress.Backend = v
	}
	if v := os.Getenv("WFM_REDIS_HOST"); v != "" {
		c.Progress.Redis.Host = v
	}
	if v := os.Getenv("WFM_REDIS_PASSWORD"); v != "" {
		c.Progress.Redis.Password = v
	}
	c.Server.Port = util.ParseIntDefault(os.Getenv("WFM_PORT"), c.Server.Port)
	c.Progress.Redis.Port = util.ParseIntDefault(os.Getenv("WFM_REDIS_PORT"), c.Progress.Redis.Port)

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = 10 * time.Second
	}
	if c.Market.RateLimit.MaxRequests == 0 {
		c.Market.RateLimit.MaxRequests = 10
	}
	if c.Market.RateLimit.Window == 0 {
		c.Market.RateLimit.Window = time.Second
	}
	if c.Fetch.FirstPassWorkers == 0 {
		c.Fetch.FirstPassWorkers = 5
	}
	if c.Fetch.RetryWorkers == 0 {
		c.Fetch.RetryWorkers = 3
	}
	if c.Fetch.MaxRetryPasses == 0 {
		c.Fetch.MaxRetryPasses = 3
	}
	if c.Fetch.RetryCooldown == 0 {
		c.Fetch.RetryCooldown = 2 * time.Second
	}
	if c.Fetch.TopOrdersPerItem == 0 {
		c.Fetch.TopOrdersPerItem = 5
	}
	if c.Progress.Backend == "" {
		c.Progress.Backend = "memory"
	}
	if c.Progress.TTL == 0 {
		c.Progress.TTL = 5 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Market.BaseURL == "" {
		return fmt.Errorf("market.base_url is required")
	}
	if c.Progress.Backend != "memory" && c.Progress.Backend != "redis" {
		return fmt.Errorf("progress.backend must be 'memory' or 'redis', got '%s'", c.Progress.Backend)
	}
	if c.Inventory.ItemsFile == "" {
		return fmt.Errorf("inventory.items_file is required")
	}
	if c.Fetch.RetryWorkers > c.Fetch.FirstPassWorkers {
		return fmt.Errorf("fetch.retry_workers cannot exceed fetch.first_pass_workers")
	}
	return nil
}
