package finder

import (
	"context"
	"errors"
	"testing"

	"retroFinder/domain"

	"github.com/stretchr/testify/assert"
)

func TestMergeConfig(t *testing.T) {
	base := DefaultConfig()

	merged := MergeConfig(base, domain.FinderConfig{
		TotalRounds:      7,
		PremiumThreshold: 40,
		Jitter:           new(bool),
		ActionGenres:     []string{"Actie"},
	})

	assert.Equal(t, 7, merged.TotalRounds)
	assert.Equal(t, 40.0, merged.PremiumThreshold)
	assert.Equal(t, base.BudgetThreshold, merged.BudgetThreshold)
	assert.Equal(t, base.RecommendationCount, merged.RecommendationCount)
	assert.Equal(t, base.JitterMax, merged.JitterMax)
	assert.False(t, merged.Jitter)
	assert.Equal(t, base.NarrativeGenres, merged.NarrativeGenres)
	assert.Equal(t, []string{"Actie"}, merged.ActionGenres)
	assert.Equal(t, base.CompleteMarkers, merged.CompleteMarkers)
}

func TestMergeConfig_JitterPrecedence(t *testing.T) {
	on, off := true, false

	tests := []struct {
		name   string
		base   bool
		stored *bool
		want   bool
	}{
		{"unset keeps env on", true, nil, true},
		{"unset keeps env off", false, nil, false},
		{"stored off wins", true, &off, false},
		{"stored on wins", false, &on, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := DefaultConfig()
			base.Jitter = tt.base

			merged := MergeConfig(base, domain.FinderConfig{TotalRounds: 6, Jitter: tt.stored})
			assert.Equal(t, tt.want, merged.Jitter)
		})
	}
}

func TestToDomainConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalRounds = 9

	stored := ToDomainConfig("shop", cfg)
	assert.Equal(t, "shop", stored.Profile)
	if assert.NotNil(t, stored.Jitter) {
		assert.Equal(t, cfg.Jitter, *stored.Jitter)
	}

	back := MergeConfig(Config{}, stored)
	assert.Equal(t, cfg.TotalRounds, back.TotalRounds)
	assert.Equal(t, cfg.BudgetThreshold, back.BudgetThreshold)
	assert.Equal(t, cfg.Jitter, back.Jitter)
	assert.Equal(t, cfg.ActionGenres, back.ActionGenres)
}

func TestLoadConfig_Fallbacks(t *testing.T) {
	def := testConfig()

	tests := []struct {
		name string
		repo ConfigRepository
	}{
		{"no repo", nil},
		{"repo error", &fakeConfigRepo{err: errors.New("boom")}},
		{"no row", &fakeConfigRepo{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFinderService(&fakeCatalog{}, newFakeSessions(), nil, tt.repo, "default", def)
			assert.Equal(t, def, svc.loadConfig(context.Background()))
		})
	}
}
