package domain

import "time"

type FinderConfig struct {
	Profile string `json:"profile" gorm:"column:profile;primaryKey"`

	// nil Jitter keeps the env setting; false turns it off

	TotalRounds         int     `json:"total_rounds" gorm:"column:total_rounds"`
	BudgetThreshold     float64 `json:"budget_threshold" gorm:"column:budget_threshold"`
	PremiumThreshold    float64 `json:"premium_threshold" gorm:"column:premium_threshold"`
	RecommendationCount int     `json:"recommendation_count" gorm:"column:recommendation_count"`
	SecondaryCount      int     `json:"secondary_count" gorm:"column:secondary_count"`
	FallbackAvgPrice    float64 `json:"fallback_avg_price" gorm:"column:fallback_avg_price"`
	Jitter              *bool   `json:"jitter" gorm:"column:jitter"`
	JitterMax           float64 `json:"jitter_max" gorm:"column:jitter_max"`

	// genre buckets for the first round, stored as a JSON array
	NarrativeGenresRaw []byte   `json:"-" gorm:"column:narrative_genres"`
	ActionGenresRaw    []byte   `json:"-" gorm:"column:action_genres"`
	NarrativeGenres    []string `json:"narrative_genres" gorm:"-"`
	ActionGenres       []string `json:"action_genres" gorm:"-"`

	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (FinderConfig) TableName() string {
	return "finder_configs"
}
