package finder

import (
	"fmt"
	"hash/fnv"
	"sort"

	"retroFinder/domain"
)

type Strategy string

const (
	StrategyGenreDiscovery        Strategy = "genre_discovery"
	StrategyPlatformDiscovery     Strategy = "platform_discovery"
	StrategyPriceDiscovery        Strategy = "price_discovery"
	StrategyCompletenessDiscovery Strategy = "completeness_discovery"
	StrategyRefinement            Strategy = "refinement"
	StrategyFallback              Strategy = "fallback"
)

const (
	refinementGenreBonus    = 5
	refinementPlatformBonus = 3
	refinementTopN          = 3
	platformRoundTopGenres  = 2
)

// Pair is two distinct items offered for one decision. The session assigns
// its ID.
type Pair struct {
	ID       string             `json:"id"`
	Round    int                `json:"round"`
	Strategy Strategy           `json:"strategy"`
	Left     domain.CatalogItem `json:"left"`
	Right    domain.CatalogItem `json:"right"`
}

type pairPicker func(pool []domain.CatalogItem, pref PreferenceState, cfg Config) (domain.CatalogItem, domain.CatalogItem, bool)

// strategies in round order; rounds past the end keep refining.
var strategies = []struct {
	name Strategy
	pick pairPicker
}{
	{StrategyGenreDiscovery, pickGenrePair},
	{StrategyPlatformDiscovery, pickPlatformPair},
	{StrategyPriceDiscovery, pickPricePair},
	{StrategyCompletenessDiscovery, pickCompletenessPair},
	{StrategyRefinement, pickRefinementPair},
}

// SelectPair produces the pair for a round, or false when fewer than two
// unused eligible items remain. A round whose own criterion cannot be met
// falls through the later strategies and finally to any two items.
func SelectPair(
	round int,
	pref PreferenceState,
	used UsedItems,
	catalog []domain.CatalogItem,
	cfg Config,
	rng Rand,
) (Pair, bool) {
	pool := eligibleSorted(catalog, used)
	if len(pool) < 2 {
		return Pair{}, false
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	start := round
	if start >= len(strategies) {
		start = len(strategies) - 1
	}
	if start < 0 {
		start = 0
	}

	for _, st := range strategies[start:] {
		if left, right, ok := st.pick(pool, pref, cfg); ok {
			return newPair(round, st.name, left, right), true
		}
	}

	return newPair(round, StrategyFallback, pool[0], pool[1]), true
}

func newPair(round int, strategy Strategy, left, right domain.CatalogItem) Pair {
	return Pair{
		Round:    round,
		Strategy: strategy,
		Left:     left,
		Right:    right,
	}
}

func pairID(generation, round int, leftID, rightID string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d|%d|%s|%s", generation, round, leftID, rightID)))
	return fmt.Sprintf("%016x", h.Sum64())
}

// firstWhere returns the first pool item matching fn whose id differs from skip.
func firstWhere(pool []domain.CatalogItem, skip string, fn func(domain.CatalogItem) bool) (domain.CatalogItem, bool) {
	for _, item := range pool {
		if item.ID != skip && fn(item) {
			return item, true
		}
	}
	return domain.CatalogItem{}, false
}

func pickOpposed(
	pool []domain.CatalogItem,
	leftFn func(domain.CatalogItem) bool,
	rightFn func(domain.CatalogItem) bool,
) (domain.CatalogItem, domain.CatalogItem, bool) {
	left, ok := firstWhere(pool, "", leftFn)
	if !ok {
		return domain.CatalogItem{}, domain.CatalogItem{}, false
	}
	right, ok := firstWhere(pool, left.ID, rightFn)
	if !ok {
		return domain.CatalogItem{}, domain.CatalogItem{}, false
	}
	return left, right, true
}

// round 0: narrative genres against action genres
func pickGenrePair(pool []domain.CatalogItem, _ PreferenceState, cfg Config) (domain.CatalogItem, domain.CatalogItem, bool) {
	return pickOpposed(pool,
		func(it domain.CatalogItem) bool { return inGenres(it.Genre, cfg.NarrativeGenres) },
		func(it domain.CatalogItem) bool { return inGenres(it.Genre, cfg.ActionGenres) },
	)
}

// round 1: two different platforms within the favourite genres
func pickPlatformPair(pool []domain.CatalogItem, pref PreferenceState, _ Config) (domain.CatalogItem, domain.CatalogItem, bool) {
	candidates := pool

	top := positiveTopKeys(pref.GenreScore, platformRoundTopGenres)
	if len(top) > 0 {
		filtered := make([]domain.CatalogItem, 0, len(pool))
		for _, item := range pool {
			if top[item.Genre] {
				filtered = append(filtered, item)
			}
		}
		if len(filtered) >= 2 {
			candidates = filtered
		}
	}

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[i].Platform != candidates[j].Platform {
				return candidates[i], candidates[j], true
			}
		}
	}

	return domain.CatalogItem{}, domain.CatalogItem{}, false
}

// round 2: a budget item against a premium one
func pickPricePair(pool []domain.CatalogItem, _ PreferenceState, cfg Config) (domain.CatalogItem, domain.CatalogItem, bool) {
	return pickOpposed(pool,
		func(it domain.CatalogItem) bool { return it.EffectivePrice() < cfg.BudgetThreshold },
		func(it domain.CatalogItem) bool { return it.EffectivePrice() >= cfg.PremiumThreshold },
	)
}

// round 3: complete in box against loose
func pickCompletenessPair(pool []domain.CatalogItem, _ PreferenceState, cfg Config) (domain.CatalogItem, domain.CatalogItem, bool) {
	return pickOpposed(pool,
		func(it domain.CatalogItem) bool { return cfg.Classify(it) == CompletenessComplete },
		func(it domain.CatalogItem) bool { return cfg.Classify(it) == CompletenessLoose },
	)
}

// round 4+: the two best matches for the profile so far; the shuffle breaks ties
func pickRefinementPair(pool []domain.CatalogItem, pref PreferenceState, _ Config) (domain.CatalogItem, domain.CatalogItem, bool) {
	if len(pool) < 2 {
		return domain.CatalogItem{}, domain.CatalogItem{}, false
	}

	topGenres := topKeys(pref.GenreScore, refinementTopN)
	topPlatforms := topKeys(pref.PlatformScore, refinementTopN)

	type scored struct {
		item  domain.CatalogItem
		score int
	}

	list := make([]scored, 0, len(pool))
	for _, item := range pool {
		score := 0
		if topGenres[item.Genre] {
			score += refinementGenreBonus
		}
		if topPlatforms[item.Platform] {
			score += refinementPlatformBonus
		}
		list = append(list, scored{item: item, score: score})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	return list[0].item, list[1].item, true
}
