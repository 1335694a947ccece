package finder

import (
	"fmt"

	"retroFinder/domain"
)

var fixturePlatforms = []string{"GameCube", "Nintendo 64", "SNES", "Switch"}

var fixturePrices = []float64{10, 22.5, 35, 47.5, 60}

// fixtureCatalog is 20 items: 5 per platform at evenly spread prices from
// 10 to 60 (mean 35), two genres and half of them complete in box. The two
// dearest games of every platform are complete RPGs, the 22.5 one is
// complete on GameCube and Nintendo 64 only.
func fixtureCatalog() []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(fixturePlatforms)*len(fixturePrices))

	for pi, platform := range fixturePlatforms {
		for j, price := range fixturePrices {
			genre := "Platformer"
			if j >= 3 {
				genre = "RPG"
			}

			completeness := "Losse cartridge"
			if j >= 3 || (j == 1 && pi < 2) {
				completeness = "Compleet in doos"
			}

			items = append(items, domain.CatalogItem{
				ID:           fmt.Sprintf("%s-%d", platform, j),
				Name:         fmt.Sprintf("%s game %d", platform, j),
				Genre:        genre,
				Platform:     platform,
				Price:        price,
				Completeness: completeness,
				Image:        fmt.Sprintf("/images/%s-%d.webp", platform, j),
			})
		}
	}

	return items
}

func item(id, genre, platform string, price float64) domain.CatalogItem {
	return domain.CatalogItem{
		ID:           id,
		Name:         id,
		Genre:        genre,
		Platform:     platform,
		Price:        price,
		Completeness: "Losse cartridge",
		Image:        "/images/" + id + ".webp",
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Jitter = false
	cfg.Seed = 42
	return cfg
}

func meanPrice(items []domain.CatalogItem) float64 {
	sum := 0.0
	for _, it := range items {
		sum += it.EffectivePrice()
	}
	return sum / float64(len(items))
}

// pickPricier answers with the side holding the higher effective price,
// left on ties.
func pickPricier(p *Pair) Side {
	if p.Right.EffectivePrice() > p.Left.EffectivePrice() {
		return SideRight
	}
	return SideLeft
}
