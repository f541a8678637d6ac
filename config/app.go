package config

import (
	"io/ioutil"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

var App *AppConfig

// AppConfig holds domain settings that are deployment policy, not code:
// how long a member accrues before a periodic liquidation is due and
// where the cooperative's fiscal year starts.
type AppConfig struct {
	LiquidationThresholdYears int        `yaml:"liquidation_threshold_years"`
	FiscalYearStartMonth      time.Month `yaml:"fiscal_year_start_month"`
	PendingCacheTTLSeconds    int        `yaml:"pending_cache_ttl_seconds"`
}

func LoadAppConfig() error {
	path := os.Getenv("APP_CONFIG")
	if len(path) == 0 {
		path = "config/app.yml"
	}

	c := &AppConfig{
		LiquidationThresholdYears: 6,
		FiscalYearStartMonth:      time.January,
		PendingCacheTTLSeconds:    300,
	}

	buf, err := ioutil.ReadFile(path)
	if err != nil {
		// Missing file keeps the defaults above.
		App = c
		return nil
	}

	if err := yaml.Unmarshal(buf, c); err != nil {
		return err
	}

	if c.LiquidationThresholdYears <= 0 {
		c.LiquidationThresholdYears = 6
	}
	if c.FiscalYearStartMonth < time.January || c.FiscalYearStartMonth > time.December {
		c.FiscalYearStartMonth = time.January
	}
	if c.PendingCacheTTLSeconds <= 0 {
		c.PendingCacheTTLSeconds = 300
	}

	App = c

	return nil
}
