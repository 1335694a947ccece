package finder

import (
	"math"
	"sort"

	"retroFinder/domain"
)

const (
	rankGenreBonus        = 12.0
	rankPlatformBonus     = 8.0
	rankTopN              = 4
	rankPriceFitMax       = 6.0
	rankPriceFitScale     = 10.0
	rankCompletenessBonus = 4.0
	rankFeaturedBonus     = 1.0
)

// ScoredItem is one ranked item with every term of its score.
type ScoredItem struct {
	Item              domain.CatalogItem `json:"item"`
	GenreBonus        float64            `json:"genre_bonus"`
	PlatformBonus     float64            `json:"platform_bonus"`
	PriceFit          float64            `json:"price_fit"`
	CompletenessBonus float64            `json:"completeness_bonus"`
	FeaturedBonus     float64            `json:"featured_bonus"`
	Jitter            float64            `json:"jitter"`
	Score             float64            `json:"score"`
}

type Ranking struct {
	Primary   *ScoredItem  `json:"primary,omitempty"`
	Secondary []ScoredItem `json:"secondary"`
	Items     []ScoredItem `json:"items"`
}

// Rank scores every eligible catalog item against the profile. Items shown
// during the session stay eligible. Ties are ordered by item id; rng is only
// consulted when jitter is enabled.
func Rank(pref PreferenceState, catalog []domain.CatalogItem, cfg Config, rng Rand) Ranking {
	items := scoreAll(pref, catalog, cfg, rng)

	limit := cfg.RecommendationCount
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}
	items = items[:limit]

	ranking := Ranking{
		Secondary: []ScoredItem{},
		Items:     items,
	}
	if len(items) == 0 {
		return ranking
	}

	primary := items[0]
	ranking.Primary = &primary

	end := 1 + cfg.SecondaryCount
	if end > len(items) {
		end = len(items)
	}
	ranking.Secondary = append(ranking.Secondary, items[1:end]...)

	return ranking
}

func scoreAll(pref PreferenceState, catalog []domain.CatalogItem, cfg Config, rng Rand) []ScoredItem {
	eligible := eligibleSorted(catalog, nil)

	topGenres := topKeys(pref.GenreScore, rankTopN)
	topPlatforms := topKeys(pref.PlatformScore, rankTopN)
	avgPrice := pref.AvgPrice(cfg.FallbackAvgPrice)
	dominant := pref.DominantCompleteness()

	out := make([]ScoredItem, 0, len(eligible))
	for _, item := range eligible {
		s := ScoredItem{Item: item}

		if topGenres[item.Genre] {
			s.GenreBonus = rankGenreBonus
		}
		if topPlatforms[item.Platform] {
			s.PlatformBonus = rankPlatformBonus
		}

		s.PriceFit = math.Max(0, rankPriceFitMax-math.Abs(item.EffectivePrice()-avgPrice)/rankPriceFitScale)

		if cfg.Classify(item) == dominant {
			s.CompletenessBonus = rankCompletenessBonus
		}
		if item.IsFeatured {
			s.FeaturedBonus = rankFeaturedBonus
		}
		if cfg.Jitter && cfg.JitterMax > 0 && rng != nil {
			s.Jitter = rng.Float64() * cfg.JitterMax
		}

		s.Score = s.GenreBonus + s.PlatformBonus + s.PriceFit + s.CompletenessBonus + s.FeaturedBonus + s.Jitter
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].Item.ID < out[j].Item.ID
		}
		return out[i].Score > out[j].Score
	})

	return out
}
