package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ProductConfig is one tracked product URL. DiscountPercent covers pages
// that encode a member discount separately from the displayed price.
type ProductConfig struct {
	URL             string  `yaml:"url"`
	DiscountPercent float64 `yaml:"discount_percent"`
}

// Config holds all application configuration.
type Config struct {
	Products []ProductConfig `yaml:"products"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		CollectCron string `yaml:"collect_cron"`
		ReportCron  string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Analyzer struct {
		ShortWindow         int     `yaml:"short_window"`
		LongWindow          int     `yaml:"long_window"`
		ChangeThreshold     float64 `yaml:"change_threshold"`
		VolatilityThreshold float64 `yaml:"volatility_threshold"`
		TrailingWindow      int     `yaml:"trailing_window"`
		Alerts              struct {
			CriticalDropPercent float64 `yaml:"critical_drop_percent"`
			GoodDealPercent     float64 `yaml:"good_deal_percent"`
			StableBandPercent   float64 `yaml:"stable_band_percent"`
			AverageBandRatio    float64 `yaml:"average_band_ratio"`
			OverpricedPercent   float64 `yaml:"overpriced_percent"`
		} `yaml:"alerts"`
	} `yaml:"analyzer"`
	Output struct {
		ReportDir string `yaml:"report_dir"`
	} `yaml:"output"`
	HTTP struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Proxy          string `yaml:"proxy"`
	} `yaml:"http"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file next to the process is loaded first so local runs
// behave like deployed ones.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_COLLECT"); v != "" {
		cfg.Schedule.CollectCron = v
	}
	if v := os.Getenv("CRON_REPORT"); v != "" {
		cfg.Schedule.ReportCron = v
	}
	if v := os.Getenv("REPORT_DIR"); v != "" {
		cfg.Output.ReportDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.HTTP.Proxy = v
	}
	if v := os.Getenv("TRACK_URLS"); v != "" {
		cfg.Products = cfg.Products[:0]
		for _, u := range splitCommaList(v) {
			cfg.Products = append(cfg.Products, ProductConfig{URL: u})
		}
	}
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.TimeoutSeconds = n
		}
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/price_tracker.db"
	}
	if cfg.Schedule.CollectCron == "" {
		cfg.Schedule.CollectCron = "0 0 */6 * * *" // every 6 hours
	}
	if cfg.Schedule.ReportCron == "" {
		cfg.Schedule.ReportCron = "0 30 8 * * *" // daily 08:30
	}
	if cfg.Analyzer.ShortWindow == 0 {
		cfg.Analyzer.ShortWindow = 3
	}
	if cfg.Analyzer.LongWindow == 0 {
		cfg.Analyzer.LongWindow = 7
	}
	if cfg.Analyzer.ChangeThreshold == 0 {
		cfg.Analyzer.ChangeThreshold = 5.0
	}
	if cfg.Analyzer.VolatilityThreshold == 0 {
		cfg.Analyzer.VolatilityThreshold = 0.05
	}
	if cfg.Analyzer.TrailingWindow == 0 {
		cfg.Analyzer.TrailingWindow = 30
	}
	if cfg.Analyzer.Alerts.CriticalDropPercent == 0 {
		cfg.Analyzer.Alerts.CriticalDropPercent = -20
	}
	if cfg.Analyzer.Alerts.GoodDealPercent == 0 {
		cfg.Analyzer.Alerts.GoodDealPercent = -10
	}
	if cfg.Analyzer.Alerts.StableBandPercent == 0 {
		cfg.Analyzer.Alerts.StableBandPercent = 5
	}
	if cfg.Analyzer.Alerts.AverageBandRatio == 0 {
		cfg.Analyzer.Alerts.AverageBandRatio = 0.10
	}
	if cfg.Analyzer.Alerts.OverpricedPercent == 0 {
		cfg.Analyzer.Alerts.OverpricedPercent = 20
	}
	if cfg.Output.ReportDir == "" {
		cfg.Output.ReportDir = "reports"
	}
	if cfg.HTTP.TimeoutSeconds == 0 {
		cfg.HTTP.TimeoutSeconds = 30
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Products) == 0 {
		return fmt.Errorf("at least one product url is required")
	}
	for i, p := range c.Products {
		if p.URL == "" {
			return fmt.Errorf("products[%d].url is empty", i)
		}
		if p.DiscountPercent < 0 || p.DiscountPercent >= 100 {
			return fmt.Errorf("products[%d].discount_percent must be in [0,100)", i)
		}
	}
	if c.Analyzer.ShortWindow >= c.Analyzer.LongWindow {
		return fmt.Errorf("analyzer.short_window must be smaller than long_window")
	}
	if c.Analyzer.Alerts.CriticalDropPercent > c.Analyzer.Alerts.GoodDealPercent {
		return fmt.Errorf("analyzer.alerts.critical_drop_percent must not exceed good_deal_percent")
	}
	return nil
}

func splitCommaList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
