package finder

import "retroFinder/domain"

const (
	chosenGenreDelta    = 2
	rejectedGenreDelta  = -1
	chosenPlatformDelta = 2
)

// ApplyChoice folds one decision into the taste profile. It never mutates its
// inputs and has no randomness, so equal inputs give equal outputs.
func ApplyChoice(
	pref PreferenceState,
	used UsedItems,
	chosen domain.CatalogItem,
	rejected domain.CatalogItem,
	cfg Config,
) (PreferenceState, UsedItems) {
	next := pref.clone()

	next.GenreScore[chosen.Genre] += chosenGenreDelta
	next.GenreScore[rejected.Genre] += rejectedGenreDelta
	next.PlatformScore[chosen.Platform] += chosenPlatformDelta

	next.PriceSum += chosen.EffectivePrice()
	next.PriceCount++

	next.CompletenessCount[cfg.Classify(chosen)]++

	nextUsed := used.clone()
	nextUsed[chosen.ID] = struct{}{}
	nextUsed[rejected.ID] = struct{}{}

	return next, nextUsed
}
