package possync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxBatchSize)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.Equal(t, 200, cfg.DashboardPageMax)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("POS_SYNC_MAX_BATCH_SIZE", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxBatchSize)
}
