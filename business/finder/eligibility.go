package finder

import (
	"sort"
	"strings"

	"retroFinder/domain"
)

type Completeness string

const (
	CompletenessComplete Completeness = "complete"
	CompletenessLoose    Completeness = "loose"
)

// IsEligible reports whether an item may be paired or ranked at all:
// it needs an image and must not be a hardware listing.
func IsEligible(item domain.CatalogItem) bool {
	return item.HasImage() && !item.IsHardware
}

func countEligible(catalog []domain.CatalogItem) int {
	n := 0
	for _, item := range catalog {
		if IsEligible(item) {
			n++
		}
	}
	return n
}

// eligibleSorted returns the eligible items not in exclude, ordered by ID.
func eligibleSorted(catalog []domain.CatalogItem, exclude UsedItems) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(catalog))
	for _, item := range catalog {
		if !IsEligible(item) || exclude.Has(item.ID) {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out
}

// Classify maps the free-text completeness descriptor to complete or loose.
func (cfg Config) Classify(item domain.CatalogItem) Completeness {
	desc := strings.ToLower(item.Completeness)

	for _, m := range cfg.LooseMarkers {
		if m != "" && strings.Contains(desc, strings.ToLower(m)) {
			return CompletenessLoose
		}
	}
	for _, m := range cfg.CompleteMarkers {
		if m != "" && strings.Contains(desc, strings.ToLower(m)) {
			return CompletenessComplete
		}
	}

	return CompletenessLoose
}

func inGenres(genre string, genres []string) bool {
	for _, g := range genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}
