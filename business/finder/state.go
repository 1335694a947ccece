package finder

import (
	"encoding/json"
	"math"
	"sort"
)

// PreferenceState is the taste profile learned from a session's choices.
type PreferenceState struct {
	GenreScore        map[string]int       `json:"genre_score"`
	PlatformScore     map[string]int       `json:"platform_score"`
	PriceSum          float64              `json:"price_sum"`
	PriceCount        int                  `json:"price_count"`
	CompletenessCount map[Completeness]int `json:"completeness_count"`
}

func NewPreferenceState() PreferenceState {
	return PreferenceState{
		GenreScore:        make(map[string]int),
		PlatformScore:     make(map[string]int),
		CompletenessCount: make(map[Completeness]int),
	}
}

func (p PreferenceState) clone() PreferenceState {
	out := NewPreferenceState()
	for k, v := range p.GenreScore {
		out.GenreScore[k] = v
	}
	for k, v := range p.PlatformScore {
		out.PlatformScore[k] = v
	}
	for k, v := range p.CompletenessCount {
		out.CompletenessCount[k] = v
	}
	out.PriceSum = p.PriceSum
	out.PriceCount = p.PriceCount
	return out
}

// AvgPrice is the mean effective price of chosen items, or fallback before any choice.
func (p PreferenceState) AvgPrice(fallback float64) float64 {
	if p.PriceCount == 0 {
		return fallback
	}
	return p.PriceSum / float64(p.PriceCount)
}

// DominantCompleteness is complete only when strictly more complete items were chosen.
func (p PreferenceState) DominantCompleteness() Completeness {
	if p.CompletenessCount[CompletenessComplete] > p.CompletenessCount[CompletenessLoose] {
		return CompletenessComplete
	}
	return CompletenessLoose
}

// topKeys returns up to n keys of scores, highest first, ties by key.
// Zero and negative scores still count.
func topKeys(scores map[string]int, n int) map[string]bool {
	return rankKeys(scores, n, func(int) bool { return true })
}

// positiveTopKeys is topKeys restricted to keys with a score above zero.
func positiveTopKeys(scores map[string]int, n int) map[string]bool {
	return rankKeys(scores, n, func(v int) bool { return v > 0 })
}

func rankKeys(scores map[string]int, n int, keep func(int) bool) map[string]bool {
	keys := make([]string, 0, len(scores))
	for k, v := range scores {
		if keep(v) {
			keys = append(keys, k)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if scores[keys[i]] == scores[keys[j]] {
			return keys[i] < keys[j]
		}
		return scores[keys[i]] > scores[keys[j]]
	})

	if len(keys) > n {
		keys = keys[:n]
	}

	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}

// UsedItems is the set of item ids already shown in a pair.
type UsedItems map[string]struct{}

func (u UsedItems) Has(id string) bool {
	_, ok := u[id]
	return ok
}

func (u UsedItems) clone() UsedItems {
	out := make(UsedItems, len(u)+2)
	for k := range u {
		out[k] = struct{}{}
	}
	return out
}

// IDs returns the ids in sorted order.
func (u UsedItems) IDs() []string {
	ids := make([]string, 0, len(u))
	for k := range u {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}

func (u UsedItems) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.IDs())
}

func (u *UsedItems) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}

	set := make(UsedItems, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	*u = set
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
