package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyChoice_UpdatesProfile(t *testing.T) {
	cfg := testConfig()

	chosen := item("ff6", "RPG", "SNES", 60)
	chosen.SalePrice = 45
	chosen.Completeness = "Compleet in doos"
	rejected := item("mario", "Platformer", "Switch", 40)

	pref, used := ApplyChoice(NewPreferenceState(), UsedItems{}, chosen, rejected, cfg)

	assert.Equal(t, 2, pref.GenreScore["RPG"])
	assert.Equal(t, -1, pref.GenreScore["Platformer"])
	assert.Equal(t, 2, pref.PlatformScore["SNES"])
	assert.Equal(t, 0, pref.PlatformScore["Switch"])
	assert.Equal(t, 45.0, pref.PriceSum)
	assert.Equal(t, 1, pref.PriceCount)
	assert.Equal(t, 1, pref.CompletenessCount[CompletenessComplete])
	assert.Equal(t, 0, pref.CompletenessCount[CompletenessLoose])

	assert.True(t, used.Has("ff6"))
	assert.True(t, used.Has("mario"))
	assert.Len(t, used, 2)
}

func TestApplyChoice_SameGenreNetsOne(t *testing.T) {
	cfg := testConfig()

	pref, _ := ApplyChoice(
		NewPreferenceState(),
		UsedItems{},
		item("a", "RPG", "SNES", 30),
		item("b", "RPG", "Switch", 30),
		cfg,
	)

	assert.Equal(t, 1, pref.GenreScore["RPG"])
}

func TestApplyChoice_DoesNotMutateInputs(t *testing.T) {
	cfg := testConfig()

	pref := NewPreferenceState()
	pref.GenreScore["RPG"] = 3
	used := UsedItems{"old": {}}

	_, _ = ApplyChoice(pref, used, item("a", "RPG", "SNES", 30), item("b", "Actie", "SNES", 30), cfg)

	assert.Equal(t, map[string]int{"RPG": 3}, pref.GenreScore)
	assert.Empty(t, pref.PlatformScore)
	assert.Zero(t, pref.PriceCount)
	assert.Equal(t, UsedItems{"old": {}}, used)
}

func TestPreferenceState_AvgPriceAndDominant(t *testing.T) {
	pref := NewPreferenceState()

	assert.Equal(t, 25.0, pref.AvgPrice(25))
	assert.Equal(t, CompletenessLoose, pref.DominantCompleteness())

	pref.PriceSum = 90
	pref.PriceCount = 3
	assert.Equal(t, 30.0, pref.AvgPrice(25))

	pref.CompletenessCount[CompletenessComplete] = 2
	pref.CompletenessCount[CompletenessLoose] = 2
	assert.Equal(t, CompletenessLoose, pref.DominantCompleteness())

	pref.CompletenessCount[CompletenessComplete] = 3
	assert.Equal(t, CompletenessComplete, pref.DominantCompleteness())
}

func TestTopKeys(t *testing.T) {
	scores := map[string]int{"RPG": 3, "Actie": 3, "Puzzel": 1, "Sport": 0, "Race": -2}

	assert.Equal(t, map[string]bool{"Actie": true, "RPG": true}, topKeys(scores, 2))
	assert.Equal(t, map[string]bool{"Actie": true, "RPG": true, "Puzzel": true, "Sport": true}, topKeys(scores, 4))
	assert.Len(t, topKeys(scores, 10), 5)
	assert.Empty(t, topKeys(map[string]int{}, 3))

	// a lone rejected genre is still the top one
	assert.Equal(t, map[string]bool{"Race": true}, topKeys(map[string]int{"Race": -1}, 3))
}

func TestPositiveTopKeys(t *testing.T) {
	scores := map[string]int{"RPG": 3, "Actie": 3, "Puzzel": 1, "Sport": 0, "Race": -2}

	assert.Equal(t, map[string]bool{"Actie": true, "RPG": true}, positiveTopKeys(scores, 2))
	assert.Equal(t, map[string]bool{"Actie": true, "RPG": true, "Puzzel": true}, positiveTopKeys(scores, 10))
	assert.Empty(t, positiveTopKeys(map[string]int{"Race": -1, "Sport": 0}, 2))
}

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		desc string
		want Completeness
	}{
		{"Compleet in doos", CompletenessComplete},
		{"CIB", CompletenessComplete},
		{"Boxed, manual missing", CompletenessComplete},
		{"Niet compleet", CompletenessLoose},
		{"Incompleet", CompletenessLoose},
		{"Losse cartridge", CompletenessLoose},
		{"", CompletenessLoose},
		{"unknown", CompletenessLoose},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			it := item("x", "RPG", "SNES", 10)
			it.Completeness = tt.desc
			assert.Equal(t, tt.want, cfg.Classify(it))
		})
	}
}
