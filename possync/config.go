package possync

import "github.com/kelseyhightower/envconfig"

// Config holds the tunables of the sync pipeline, loaded from environment
// variables with the POS_SYNC prefix.
type Config struct {
	MaxBatchSize     int `envconfig:"MAX_BATCH_SIZE" default:"500"`
	RateLimitPerMin  int `envconfig:"RATE_LIMIT_PER_MIN" default:"120"`
	DashboardPageMax int `envconfig:"DASHBOARD_PAGE_MAX" default:"200"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("POS_SYNC", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
