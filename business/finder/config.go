package finder

import (
	"context"

	"retroFinder/domain"
)

type Config struct {
	// number of pairwise rounds before ranking
	TotalRounds int

	// round 2 price split, compared against effective prices
	BudgetThreshold  float64
	PremiumThreshold float64

	RecommendationCount int
	SecondaryCount      int

	// average chosen price assumed when no round completed
	FallbackAvgPrice float64

	// Jitter adds a random [0, JitterMax) term to ranking scores.
	// Turn it off for reproducible rankings.
	Jitter    bool
	JitterMax float64

	// Seed pins the random source of new sessions; 0 draws one per session.
	Seed int64

	NarrativeGenres []string
	ActionGenres    []string
	CompleteMarkers []string
	LooseMarkers    []string
}

const (
	defaultTotalRounds         = 5
	defaultBudgetThreshold     = 20.0
	defaultPremiumThreshold    = 35.0
	defaultRecommendationCount = 12
	defaultSecondaryCount      = 6
	defaultFallbackAvgPrice    = 25.0
	defaultJitterMax           = 2.0
)

func DefaultConfig() Config {
	return Config{
		TotalRounds:         defaultTotalRounds,
		BudgetThreshold:     defaultBudgetThreshold,
		PremiumThreshold:    defaultPremiumThreshold,
		RecommendationCount: defaultRecommendationCount,
		SecondaryCount:      defaultSecondaryCount,
		FallbackAvgPrice:    defaultFallbackAvgPrice,
		Jitter:              true,
		JitterMax:           defaultJitterMax,

		NarrativeGenres: []string{"RPG", "Strategie", "Simulatie", "Puzzel"},
		ActionGenres:    []string{"Actie", "Platformer", "Avontuur", "Vecht", "Shooter", "Race", "Sport", "Party"},
		CompleteMarkers: []string{"compleet", "complete", "cib", "boxed", "in doos"},
		LooseMarkers:    []string{"incompl", "niet compleet", "loose", "losse"},
	}
}

// read per-profile finder config from DB.
type ConfigRepository interface {
	GetConfig(ctx context.Context, profile string) (domain.FinderConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.FinderConfig) error
}
