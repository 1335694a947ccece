package main

import (
	"testing"

	"retroFinder/business/finder"
	"retroFinder/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestEngineConfig(t *testing.T) {
	def := finder.DefaultConfig()

	cfg := engineConfig(config.FinderConfig{Jitter: true})
	assert.Equal(t, def, cfg)

	cfg = engineConfig(config.FinderConfig{
		TotalRounds:     8,
		BudgetThreshold: 15,
		Jitter:          false,
		Seed:            7,
	})
	assert.Equal(t, 8, cfg.TotalRounds)
	assert.Equal(t, 15.0, cfg.BudgetThreshold)
	assert.Equal(t, def.PremiumThreshold, cfg.PremiumThreshold)
	assert.False(t, cfg.Jitter)
	assert.Equal(t, int64(7), cfg.Seed)
}
