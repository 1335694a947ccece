package finder

import (
	"context"

	"retroFinder/domain"
	"retroFinder/pkg/logger"
)

// loadConfig reads the configured profile from the repo, falling back to defaultCfg
// for the whole config on error and per field for zero values.
func (s *FinderService) loadConfig(ctx context.Context) Config {
	if s.cfgRepo == nil {
		return s.defaultCfg
	}

	dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, s.profile)
	if err != nil {
		logger.Warn("finder_config_load_failed", "profile", s.profile, "error", err)
		return s.defaultCfg
	}
	if !ok {
		return s.defaultCfg
	}

	return MergeConfig(s.defaultCfg, dbCfg)
}

// MergeConfig overlays the non-zero fields of a stored profile on base.
func MergeConfig(base Config, dbCfg domain.FinderConfig) Config {
	cfg := base

	if dbCfg.TotalRounds > 0 {
		cfg.TotalRounds = dbCfg.TotalRounds
	}
	if dbCfg.BudgetThreshold > 0 {
		cfg.BudgetThreshold = dbCfg.BudgetThreshold
	}
	if dbCfg.PremiumThreshold > 0 {
		cfg.PremiumThreshold = dbCfg.PremiumThreshold
	}
	if dbCfg.RecommendationCount > 0 {
		cfg.RecommendationCount = dbCfg.RecommendationCount
	}
	if dbCfg.SecondaryCount > 0 {
		cfg.SecondaryCount = dbCfg.SecondaryCount
	}
	if dbCfg.FallbackAvgPrice > 0 {
		cfg.FallbackAvgPrice = dbCfg.FallbackAvgPrice
	}
	if dbCfg.JitterMax > 0 {
		cfg.JitterMax = dbCfg.JitterMax
	}
	if dbCfg.Jitter != nil {
		cfg.Jitter = *dbCfg.Jitter
	}

	if len(dbCfg.NarrativeGenres) > 0 {
		cfg.NarrativeGenres = dbCfg.NarrativeGenres
	}
	if len(dbCfg.ActionGenres) > 0 {
		cfg.ActionGenres = dbCfg.ActionGenres
	}

	return cfg
}

// ToDomainConfig is the inverse of MergeConfig, used to show the effective profile.
func ToDomainConfig(profile string, cfg Config) domain.FinderConfig {
	jitter := cfg.Jitter

	return domain.FinderConfig{
		Profile:             profile,
		TotalRounds:         cfg.TotalRounds,
		BudgetThreshold:     cfg.BudgetThreshold,
		PremiumThreshold:    cfg.PremiumThreshold,
		RecommendationCount: cfg.RecommendationCount,
		SecondaryCount:      cfg.SecondaryCount,
		FallbackAvgPrice:    cfg.FallbackAvgPrice,
		Jitter:              &jitter,
		JitterMax:           cfg.JitterMax,
		NarrativeGenres:     cfg.NarrativeGenres,
		ActionGenres:        cfg.ActionGenres,
	}
}
