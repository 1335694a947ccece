package postgres

import (
	"context"
	"encoding/json"

	"retroFinder/business/finder"
	"retroFinder/domain"
	"retroFinder/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FinderConfigRepository struct {
	DB *gorm.DB
}

var _ finder.ConfigRepository = (*FinderConfigRepository)(nil)

func NewFinderConfigRepository(db *gorm.DB) *FinderConfigRepository {
	return &FinderConfigRepository{DB: db}
}

func (r *FinderConfigRepository) GetConfig(ctx context.Context, profile string) (domain.FinderConfig, bool, error) {
	var cfg domain.FinderConfig

	err := r.DB.WithContext(ctx).
		Where("profile = ?", profile).
		First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return domain.FinderConfig{}, false, nil
	}
	if err != nil {
		return domain.FinderConfig{}, false, err
	}

	cfg.NarrativeGenres = decodeGenres(profile, "narrative_genres", cfg.NarrativeGenresRaw)
	cfg.ActionGenres = decodeGenres(profile, "action_genres", cfg.ActionGenresRaw)
	return cfg, true, nil
}

// decodeGenres returns nil for an empty or unreadable column so the loader
// keeps the built-in bucket.
func decodeGenres(profile, column string, raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var genres []string
	if err := json.Unmarshal(raw, &genres); err != nil {
		logger.Warn("finder_config_genres_invalid",
			"profile", profile,
			"column", column,
			"error", err,
		)
		return nil
	}
	return genres
}

func (r *FinderConfigRepository) UpsertConfig(ctx context.Context, cfg domain.FinderConfig) error {
	// genre lists are stored serialized
	if len(cfg.NarrativeGenresRaw) == 0 && len(cfg.NarrativeGenres) > 0 {
		raw, _ := json.Marshal(cfg.NarrativeGenres)
		cfg.NarrativeGenresRaw = raw
	}
	if len(cfg.ActionGenresRaw) == 0 && len(cfg.ActionGenres) > 0 {
		raw, _ := json.Marshal(cfg.ActionGenres)
		cfg.ActionGenresRaw = raw
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "profile"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_rounds",
				"budget_threshold",
				"premium_threshold",
				"recommendation_count",
				"secondary_count",
				"fallback_avg_price",
				"jitter",
				"jitter_max",
				"narrative_genres",
				"action_genres",
				"updated_at",
			}),
		}).
		Create(&cfg).Error
}
