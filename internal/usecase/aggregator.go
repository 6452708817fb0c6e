package usecase

import (
	"fmt"
	"sort"

	"github.com/priceradar/backend/internal/domain"
)

// DefaultTopK is the number of ranked offers returned when no size is configured
const DefaultTopK = 3

// RankOffers reduces the combined outcomes of one query to the top-K
// cheapest deduplicated offers. Offers from successful outcomes are
// flattened in sorted retailer order, deduplicated by canonical URL (offers
// without a URL get a synthetic key and are never merged), keeping the
// strictly lower price on a collision, then stably sorted ascending by
// price and truncated to k. Pure function; empty input yields an empty
// slice.
//
// Non-positive prices are not filtered here. Price validity is an adapter
// concern; whatever number arrives is orderable.
func RankOffers(outcomes map[string]domain.RetailerOutcome, k int) []domain.PriceOffer {
	if k <= 0 {
		k = DefaultTopK
	}

	// Map iteration order is random; fix the flatten order so ranking is
	// deterministic and ties resolve the same way on every call.
	retailers := make([]string, 0, len(outcomes))
	for retailer := range outcomes {
		retailers = append(retailers, retailer)
	}
	sort.Strings(retailers)

	// order preserves first-encounter positions so ties stay stable
	byKey := make(map[string]domain.PriceOffer)
	order := make([]string, 0)
	for _, retailer := range retailers {
		outcome := outcomes[retailer]
		if !outcome.Success {
			continue
		}
		for i, offer := range outcome.Offers {
			key := offer.URL
			if key == "" {
				// Linkless offers are always distinct: the index makes the
				// synthetic key collision-free.
				key = fmt.Sprintf("%s|%.2f|%d", retailer, offer.Price, i)
			}

			existing, seen := byKey[key]
			if !seen {
				byKey[key] = offer
				order = append(order, key)
			} else if offer.Price < existing.Price {
				// Same listing observed twice; trust the lower quoted price
				byKey[key] = offer
			}
		}
	}

	ranked := make([]domain.PriceOffer, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, byKey[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price < ranked[j].Price
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
